package catalog

import "strings"

// ParseIngredients splits a comma separated list, trims every entry and
// drops the empty ones. Order and duplicates are kept.
func ParseIngredients(raw string) []string {
	ingredients := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ingredients = append(ingredients, part)
		}
	}
	return ingredients
}
