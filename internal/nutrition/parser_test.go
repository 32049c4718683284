package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "empty", input: "", want: 0},
		{name: "whitespace", input: "   ", want: 0},
		{name: "sentinel", input: "N/A", want: 0},
		{name: "sentinel lower case", input: "n/a", want: 0},
		{name: "sentinel padded", input: " N/a ", want: 0},
		{name: "kcal with space", input: "165 kcal", want: 165},
		{name: "grams", input: "10g", want: 10},
		{name: "fraction", input: "0.5g", want: 0.5},
		{name: "zero", input: "0g", want: 0},
		{name: "dash only", input: "-", want: 0},
		{name: "unit only", input: "kcal", want: 0},
		{name: "negative clamps to zero", input: "-5g", want: 0},
		{name: "trailing branding", input: "5g Sugar, (C) BrandName", want: 5},
		{name: "leading label", input: "sugar: 1g (estimated)", want: 1},
		{name: "stray dot and dash after number", input: "1g Coca Cola, Inc. - All Rights Reserved.", want: 1},
		{name: "range keeps first number", input: "10-12g", want: 10},
		{name: "leading decimal point", input: ".5g", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseValue(tt.input))
		})
	}
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"165 kcal", true},
		{"10g", true},
		{"0.5g", true},
		{"40µg", true},
		{"2.4 μg", true},
		{"N/A", true},
		{"n/a", true},
		{"", false},
		{"10", false},
		{"10  g", false},
		{"sugar: 5g", false},
		{"5g Sugar, (C) BrandName", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWellFormed(tt.input))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "150", FormatAmount(150))
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "0.5", FormatAmount(0.5))
	assert.Equal(t, "12.3", FormatAmount(12.34))
	assert.Equal(t, "1,234.6", FormatAmount(1234.56))
}
