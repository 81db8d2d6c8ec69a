// Package input turns user-typed text into validated values for the record
// store and due-check engine.
package input

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ukydev/moto-maintenance/internal/models"
)

// ErrInvalidFormat is wrapped by every parse failure.
var ErrInvalidFormat = errors.New("invalid format")

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidFormat, s)
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrInvalidFormat, s, err)
	}
	return t, nil
}

// ParseMileage parses a non-negative integer odometer reading.
func ParseMileage(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: mileage %q is not a whole number", ErrInvalidFormat, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %w", ErrInvalidFormat, models.ErrNegativeMileage)
	}
	return n, nil
}
