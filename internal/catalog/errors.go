package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIDExhausted = errors.New("catalog: could not generate a unique item id")

// ValidationError is returned by AddItem when a draft is rejected. Field
// names the offending form field.
type ValidationError interface {
	error
	Field() string
}

type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field(s): %s", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldError) Field() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0]
}

type InvalidPriceError struct {
	Raw string
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price %q: must be a number greater than zero", e.Raw)
}

func (e *InvalidPriceError) Field() string { return FieldPrice }

type InvalidCategoryError struct {
	Raw string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid category %q: must be one of STARTER, MAIN, DESSERT", e.Raw)
}

func (e *InvalidCategoryError) Field() string { return FieldCategory }

type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("catalog: duplicate item id %q", e.ID)
}

// IsValidationError reports whether err (or anything it wraps) rejected a draft.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
