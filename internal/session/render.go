package session

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chrisdamba/chefmenu/internal/catalog"
	"github.com/chrisdamba/chefmenu/internal/models"
)

const (
	menuTitle    = "Christoffel's"
	menuSubtitle = "Fine Dining Experience"
)

// Renderer draws views as plain text.
type Renderer struct {
	Currency string
}

func (r Renderer) money(amount string) string {
	return r.Currency + amount
}

func (r Renderer) Averages(w io.Writer, averages map[models.Course]string) {
	parts := make([]string, 0, len(models.Courses))
	for _, course := range models.Courses {
		parts = append(parts, fmt.Sprintf("%s %s", course, r.money(averages[course])))
	}
	fmt.Fprintf(w, "Average price: %s\n", strings.Join(parts, " | "))
}

func (r Renderer) Counts(w io.Writer, counts map[models.Course]int) {
	parts := make([]string, 0, len(models.Courses))
	for _, course := range models.Courses {
		parts = append(parts, fmt.Sprintf("%s %s", course, itemCount(counts[course])))
	}
	fmt.Fprintf(w, "Items per course: %s\n", strings.Join(parts, " | "))
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

func (r Renderer) Listing(w io.Writer, l Listing) {
	fmt.Fprintf(w, "%s\n%s\n\n", menuTitle, menuSubtitle)
	r.Averages(w, l.Averages)
	r.Counts(w, l.Counts)
	fmt.Fprintf(w, "%d items on the menu\n", len(l.Items))
	for _, item := range l.Items {
		fmt.Fprintln(w)
		r.Item(w, item)
	}
}

func (r Renderer) Filter(w io.Writer, f FilterResult) {
	fmt.Fprintf(w, "%ss (%d)\n", f.Course, f.Count)
	if f.Count == 0 {
		fmt.Fprintln(w, "No items in this course yet.")
		return
	}
	for _, item := range f.Items {
		fmt.Fprintln(w)
		r.Item(w, item)
	}
}

func (r Renderer) Item(w io.Writer, item models.MenuItem) {
	fmt.Fprintf(w, "[%s] %s\n", item.ID, item.ItemName)
	fmt.Fprintf(w, "    %s · %s · %s\n", item.Category, r.money(item.Price.StringFixed(2)), item.Intensity)
	if item.Description != "" {
		fmt.Fprintf(w, "    %s\n", item.Description)
	}
	if len(item.Ingredients) > 0 {
		fmt.Fprintf(w, "    Ingredients: %s\n", strings.Join(item.Ingredients, ", "))
	}
	if item.Image != "" {
		fmt.Fprintf(w, "    Image: %s\n", item.Image)
	}
}

// Problem turns an add-item error into the message shown to the user.
func (r Renderer) Problem(w io.Writer, err error) {
	var missing *catalog.MissingFieldError
	var ve catalog.ValidationError
	switch {
	case errors.As(err, &missing):
		fmt.Fprintf(w, "Missing fields: please fill in %s.\n", strings.Join(missing.Fields, ", "))
	case errors.As(err, &ve):
		fmt.Fprintf(w, "Invalid %s: %v\n", ve.Field(), err)
	default:
		fmt.Fprintf(w, "Could not save item: %v\n", err)
	}
}
