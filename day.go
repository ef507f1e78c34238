package mess

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sudharshan-del/Hostel-Management/catalog"
)

// ErrInvalidDate is returned when a menu date cannot be parsed.
var ErrInvalidDate = errors.New("mess: invalid date")

// DateLayout is the calendar date format accepted by the menu endpoint.
const DateLayout = "2006-01-02"

// ParseDay returns the weekday of a YYYY-MM-DD date. A weekday name such as
// "monday" is accepted as well.
func ParseDay(s string) (time.Weekday, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidDate)
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Weekday(), nil
	}

	if d, err := catalog.ParseWeekday(s); err == nil {
		return d, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
