package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration indicates user input that is not a positive whole number of minutes.
var ErrInvalidDuration = errors.New("invalid duration")

// maxMinutes is the largest minute count representable as a time.Duration.
const maxMinutes = float64(math.MaxInt64 / int64(time.Minute))

// Parse converts a minute count such as "25" or "90" into a duration.
// Zero, negative, fractional and non-numeric input is rejected.
func Parse(input string) (time.Duration, error) {
	text := strings.TrimSpace(input)
	if isHexLiteral(text) {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidDuration, input)
	}
	minutes, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidDuration, input)
	}
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrInvalidDuration, input)
	}
	if minutes <= 0 {
		return 0, fmt.Errorf("%w: %q must be greater than zero", ErrInvalidDuration, input)
	}
	if minutes != math.Trunc(minutes) {
		return 0, fmt.Errorf("%w: %q is not a whole number of minutes", ErrInvalidDuration, input)
	}
	if minutes > maxMinutes {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidDuration, input)
	}

	seconds := int64(math.Round(minutes * 60))
	return time.Duration(seconds) * time.Second, nil
}

func isHexLiteral(text string) bool {
	unsigned := strings.TrimLeft(text, "+-")
	return strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X")
}

// Format renders a duration as H:MM:SS.
func Format(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	total := int64(value / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
