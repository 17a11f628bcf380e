// Package duration parses the age arguments used to select trashed files,
// such as "30d", "2w" or "30 days".
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	kduration "github.com/k1LoW/duration"
)

const day = 24 * time.Hour

// units are the calendar-ish units accepted in the compact "<n><unit>" form.
// A month is 30 days and a year 365 days.
var units = map[string]time.Duration{
	"h": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": 7 * day, "week": 7 * day, "weeks": 7 * day,
	"m": 30 * day, "mo": 30 * day, "month": 30 * day, "months": 30 * day,
	"y": 365 * day, "year": 365 * day, "years": 365 * day,
}

var compact = regexp.MustCompile(`^(\d+)\s*([a-z]+)$`)

var (
	// ErrInvalidFormat indicates the input is not a duration at all
	ErrInvalidFormat = errors.New("invalid duration format")

	// ErrInvalidNumber indicates the duration is negative or overflows
	ErrInvalidNumber = errors.New("invalid duration number")

	// ErrInvalidUnit indicates a number followed by an unknown unit
	ErrInvalidUnit = errors.New("invalid duration unit")
)

// Parse reads a non-negative duration. The compact form "<n><unit>" takes
// h, d, w, m (month) and y with their long names; anything else is handed
// to k1LoW/duration, which also knows minutes and seconds.
func Parse(input string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}

	if m := compact.FindStringSubmatch(s); m != nil {
		if unit, ok := units[m[2]]; ok {
			n, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil || n > int64(time.Duration(1<<63-1)/unit) {
				return 0, fmt.Errorf("%w: %q is too large", ErrInvalidNumber, input)
			}
			return time.Duration(n) * unit, nil
		}
	}

	d, err := kduration.Parse(s)
	if err != nil {
		if compact.MatchString(s) {
			return 0, fmt.Errorf("%w: %q (supported: h, d, w, m, y)", ErrInvalidUnit, input)
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, input)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: must not be negative", ErrInvalidNumber)
	}
	return d, nil
}
