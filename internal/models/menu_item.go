package models

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID          string          `json:"id"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Category    Course          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Intensity   Intensity       `json:"intensity"` // derived from Price when the item is created
	Image       string          `json:"image"`
	Ingredients []string        `json:"ingredients"`
}

// Clone returns a copy that shares no memory with m.
func (m MenuItem) Clone() MenuItem {
	c := m
	if m.Ingredients != nil {
		c.Ingredients = append([]string(nil), m.Ingredients...)
	}
	return c
}

// Draft is unvalidated input from the add-item form. Every field is kept
// exactly as typed; Ingredients is the raw comma separated list.
type Draft struct {
	ItemName    string
	Description string
	Category    string
	Price       string
	Image       string
	Ingredients string
}
