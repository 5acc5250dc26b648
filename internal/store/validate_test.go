package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLength(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		max     int
		wantErr bool
	}{
		{name: "empty string passes", value: "", max: 10, wantErr: false},
		{name: "short value passes", value: "abc", max: 10, wantErr: false},
		{name: "exact boundary passes", value: strings.Repeat("a", 10), max: 10, wantErr: false},
		{name: "one over fails", value: strings.Repeat("a", 11), max: 10, wantErr: true},
		{name: "far over fails", value: strings.Repeat("a", 501), max: 500, wantErr: true},
		{name: "multibyte counted as runes", value: strings.Repeat("é", 10), max: 10, wantErr: false},
		{name: "multibyte over fails", value: strings.Repeat("é", 11), max: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLength(tt.value, tt.max, "Field")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidateLength(strings.Repeat("a", 501), MaxTodoContent, "Todo")
	require.Error(t, err)
	assert.Equal(t, "Todo exceeds maximum length of 500 characters", err.Error())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Todo", vErr.Field)
	assert.Equal(t, 500, vErr.Max)

	err = ValidateLength(strings.Repeat("a", 50_001), MaxNoteContent, "Note content")
	require.Error(t, err)
	assert.Equal(t, "Note content exceeds maximum length of 50000 characters", err.Error())
}
