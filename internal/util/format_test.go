package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatKeyUnits(t *testing.T) {
	assert.Equal(t, "0.00u", FormatKeyUnits(0))
	assert.Equal(t, "2.06u", FormatKeyUnits(2.0615528))
	assert.Equal(t, "1234.50u", FormatKeyUnits(1234.5))
}

func TestFormatMillimeters(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "zero",
			input:    0,
			expected: "0.0mm",
		},
		{
			name:     "millimeters",
			input:    39.3,
			expected: "39.3mm",
		},
		{
			name:     "exactly one meter",
			input:    1000,
			expected: "1.00m",
		},
		{
			name:     "meters",
			input:    15250,
			expected: "15.25m",
		},
		{
			name:     "kilometers",
			input:    2_500_000,
			expected: "2.500km",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMillimeters(tt.input))
		})
	}
}

func TestFormatMillis(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{
			name:     "milliseconds",
			input:    999,
			expected: "999ms",
		},
		{
			name:     "seconds",
			input:    1500,
			expected: "1.5s",
		},
		{
			name:     "just under a minute",
			input:    59_900,
			expected: "59.9s",
		},
		{
			name:     "minutes",
			input:    90_000,
			expected: "1m 30s",
		},
		{
			name:     "zero",
			input:    0,
			expected: "0ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMillis(tt.input))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1.5K", FormatCount(1500))
	assert.Equal(t, "2.5M", FormatCount(2_500_000))
}

func TestGetDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, GetDisplayWidth("hello"))
	assert.Equal(t, 0, GetDisplayWidth(""))
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "hello", TruncateToWidth("hello", 10))
	assert.Equal(t, "he", TruncateToWidth("hello", 2))
	assert.Equal(t, "", TruncateToWidth("hello", 0))
}
