package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredientSpec(t *testing.T) {
	parsed, err := ParseIngredientSpec("milk:0.2;espresso:1")
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, ParsedIngredient{Name: "milk", AmountPerUnit: 0.2}, parsed[0])
	assert.Equal(t, ParsedIngredient{Name: "espresso", AmountPerUnit: 1}, parsed[1])
}

func TestParseIngredientSpecTrimsWhitespace(t *testing.T) {
	parsed, err := ParseIngredientSpec("  milk : 0.2 ; espresso : 1 ")
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, "milk", parsed[0].Name)
	assert.Equal(t, "espresso", parsed[1].Name)
}

func TestParseIngredientSpecEmpty(t *testing.T) {
	parsed, err := ParseIngredientSpec("")
	require.NoError(t, err)
	assert.Empty(t, parsed)

	parsed, err = ParseIngredientSpec("   ")
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func TestParseIngredientSpecRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		spec string
	}{
		{"missing amount", "milk"},
		{"empty entry", "milk:0.2;;espresso:1"},
		{"empty name", ":0.2"},
		{"non-numeric amount", "milk:lots"},
		{"zero amount", "milk:0"},
		{"negative amount", "milk:-0.2"},
		{"duplicate ingredient", "milk:0.2;milk:0.3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseIngredientSpec(tc.spec)
			assert.Error(t, err)
		})
	}
}
