package store

import (
	"fmt"
	"unicode/utf8"
)

// Maximum lengths for free-text fields, enforced before every write.
// The v1 schema bakes the same limits in as CHECK constraints.
const (
	MaxTodoContent    = 500
	MaxNoteTitle      = 200
	MaxNoteContent    = 50_000
	MaxWorkLogContent = 10_000
)

// ValidationError reports user input exceeding a field's maximum length.
// It is always returned before any write is issued.
type ValidationError struct {
	Field string
	Max   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s exceeds maximum length of %d characters", e.Field, e.Max)
}

// ValidateLength returns a *ValidationError when value is strictly longer
// than max characters. The boundary len == max passes, as does the empty
// string. Lengths are counted in runes to match SQLite's length().
func ValidateLength(value string, max int, field string) error {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{Field: field, Max: max}
	}
	return nil
}
