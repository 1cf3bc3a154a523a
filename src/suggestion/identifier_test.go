package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		input  string
		number int64
		hasNum bool
		letter string
	}{
		{"42", 42, true, ""},
		{"#42", 42, true, ""},
		{"42b", 42, true, "b"},
		{"#42b", 42, true, "b"},
		{"42B", 42, true, "b"},
		{"**#42b:**", 42, true, "b"},
		{"**17**", 17, true, ""},
		{"#42:", 42, true, ""},
		{"  42c  ", 42, true, "c"},
		{"b", 0, false, "b"},
		{"", 0, false, ""},
		{"nope", 0, false, ""},
		// "a" is never an extension letter; the base record is addressed
		// by its bare number.
		{"42a", 42, true, ""},
		{"0", 0, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ident := ParseIdentifier(tt.input)
			if tt.hasNum {
				require.NotNil(t, ident.Number)
				assert.Equal(t, tt.number, *ident.Number)
			} else {
				assert.Nil(t, ident.Number)
			}
			assert.Equal(t, tt.letter, ident.Extension)
		})
	}
}

func TestIsExtensionIdentifier(t *testing.T) {
	assert.True(t, IsExtensionIdentifier("42b"))
	assert.True(t, IsExtensionIdentifier("**#42z:**"))

	// A bare number names a suggestion but not an extension.
	assert.False(t, IsExtensionIdentifier("42"))
	assert.False(t, IsExtensionIdentifier("#42"))
	// A bare letter has no number to anchor it.
	assert.False(t, IsExtensionIdentifier("b"))
	assert.False(t, IsExtensionIdentifier(""))
	assert.False(t, IsExtensionIdentifier("42a"))
}

func TestFormatIdentifier(t *testing.T) {
	assert.Equal(t, "50", FormatIdentifier(50, ""))
	assert.Equal(t, "50c", FormatIdentifier(50, "c"))
	assert.Equal(t, "50c", FormatIdentifier(50, "C"))
}

func TestIdentifierRoundTrip(t *testing.T) {
	for _, text := range []string{"1", "42", "42b", "999z"} {
		ident := ParseIdentifier(text)
		require.NotNil(t, ident.Number, text)
		assert.Equal(t, text, ident.String(), text)
	}

	assert.Equal(t, "", Identifier{}.String())
}
