package models

import "github.com/shopspring/decimal"

type Intensity string

const (
	IntensityMild     Intensity = "Mild"
	IntensityBalanced Intensity = "Balanced"
	IntensityStrong   Intensity = "Strong"
)

var (
	balancedFrom = decimal.NewFromInt(100)
	strongFrom   = decimal.NewFromInt(200)
)

// IntensityForPrice buckets a price: below 100 is mild, 100 up to but not
// including 200 is balanced, 200 and above is strong.
func IntensityForPrice(price decimal.Decimal) Intensity {
	switch {
	case price.LessThan(balancedFrom):
		return IntensityMild
	case price.LessThan(strongFrom):
		return IntensityBalanced
	default:
		return IntensityStrong
	}
}
