package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIngredients(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{" Tomato, Basil ,  , Olive Oil", []string{"Tomato", "Basil", "Olive Oil"}},
		{"egg, egg,milk", []string{"egg", "egg", "milk"}},
		{"", []string{}},
		{" , ,", []string{}},
		{"single", []string{"single"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseIngredients(tt.raw), "ParseIngredients(%q)", tt.raw)
	}
}
