package duration

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "25", expected: "0:25:00"},
		{input: "5", expected: "0:05:00"},
		{input: "90", expected: "1:30:00"},
		{input: "60", expected: "1:00:00"},
		{input: "25.0", expected: "0:25:00"},
		{input: " 45 ", expected: "0:45:00"},
		{input: "1e2", expected: "1:40:00"},
		{input: "720", expected: "12:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			parsed, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Format(parsed))
		})
	}
}

func TestParseTotalSeconds(t *testing.T) {
	for minutes := 1; minutes <= 600; minutes += 7 {
		parsed, err := Parse(strconv.Itoa(minutes))
		require.NoError(t, err)
		assert.Equal(t, time.Duration(minutes*60)*time.Second, parsed)
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"",
		"ooooo",
		"abc",
		"0",
		"0.0",
		"-5",
		"-23.4",
		"0.5",
		"30.5",
		"29.20023",
		"NaN",
		"Inf",
		"-Inf",
		"1e30",
		"25 min",
		"0x1p4",
		"0X10p0",
		"+0x1p4",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			parsed, err := Parse(input)
			require.ErrorIs(t, err, ErrInvalidDuration)
			assert.Zero(t, parsed)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		value    time.Duration
		expected string
	}{
		{name: "zero", value: 0, expected: "0:00:00"},
		{name: "negative clamps", value: -time.Minute, expected: "0:00:00"},
		{name: "seconds", value: 59 * time.Second, expected: "0:00:59"},
		{name: "minutes and seconds", value: 4*time.Minute + 59*time.Second, expected: "0:04:59"},
		{name: "hours", value: 12*time.Hour + 5*time.Second, expected: "12:00:05"},
		{name: "sub-second truncated", value: 1500 * time.Millisecond, expected: "0:00:01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.value))
		})
	}
}
