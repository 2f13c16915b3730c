package timesheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// OpenProject reports logged time as ISO 8601 durations. Year/month/day
// designators are accepted for completeness but carry no hours.
var durationPattern = regexp.MustCompile(
	`^P(?:\d+Y)?(?:\d+M)?(?:\d+D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`,
)

// ParseError reports a duration string that could not be interpreted.
// Malformed durations are never coerced to zero; silent data loss in a
// timesheet is worse than a failed export.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid ISO 8601 duration %q", e.Input)
}

// ParseHours converts an ISO 8601 duration such as "PT7H30M" to decimal
// hours. The result keeps full precision; rounding for display belongs to
// the report writers.
func ParseHours(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, &ParseError{Input: raw}
	}

	match := durationPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, &ParseError{Input: raw}
	}

	hours := durationComponent(match[1])
	minutes := durationComponent(match[2])
	seconds := durationComponent(match[3])

	return hours + minutes/60 + seconds/3600, nil
}

func durationComponent(group string) float64 {
	if group == "" {
		return 0
	}
	// The pattern only captures digit runs.
	value, _ := strconv.Atoi(group)
	return float64(value)
}
