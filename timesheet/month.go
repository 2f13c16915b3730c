package timesheet

import (
	"fmt"
	"strings"
	"time"

	"opexport/internal/timeutil"
)

const monthLayout = "2006-01"

// Month identifies one calendar month of a report.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses "YYYY-MM". Failures are configuration errors, detected
// before any network call.
func ParseMonth(value string) (Month, error) {
	parsed, err := time.Parse(monthLayout, strings.TrimSpace(value))
	if err != nil {
		return Month{}, &ConfigError{Field: "month", Reason: fmt.Sprintf("%q is not in YYYY-MM format", value)}
	}
	return Month{Year: parsed.Year(), Month: parsed.Month()}, nil
}

// CurrentMonth returns the month the local clock is in.
func CurrentMonth() Month {
	now := time.Now()
	return Month{Year: now.Year(), Month: now.Month()}
}

// Bounds returns the first and last day of the month at midnight UTC.
func (m Month) Bounds() (time.Time, time.Time) {
	return timeutil.MonthBounds(m.Year, m.Month)
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
