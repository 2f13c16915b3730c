package timesheet

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"opexport/openproject"
)

const descriptionSeparator = "_"

// ReportRow is the normalized, presentation-ready form of one time entry.
// Exactly one row per fetched entry; rows are never merged.
type ReportRow struct {
	Date        time.Time
	Hours       float64
	Location    string
	Description string
}

// NewRow converts a fetched time entry and its resolved location into a
// report row. A malformed duration fails the row, tagged with the entry id.
func NewRow(entry openproject.TimeEntry, location string) (ReportRow, error) {
	hours, err := ParseHours(entry.Hours)
	if err != nil {
		return ReportRow{}, fmt.Errorf("time entry %d: %w", entry.ID, err)
	}

	return ReportRow{
		Date:        entry.SpentOn,
		Hours:       hours,
		Location:    location,
		Description: ComposeDescription(entry.EntityID(), entry.ActivityName, entry.Comment),
	}, nil
}

// ComposeDescription joins assignment number, activity name and comment with
// "_" in that order. Empty parts are omitted so a missing comment never
// leaves a dangling separator. Comment whitespace is squashed to one line.
func ComposeDescription(assignment, activity, comment string) string {
	candidates := []string{
		strings.TrimSpace(assignment),
		strings.TrimSpace(activity),
		squashWhitespace(comment),
	}

	parts := make([]string, 0, len(candidates))
	for _, part := range candidates {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, descriptionSeparator)
}

func squashWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// SortRows orders rows ascending by date. The sort is stable so entries on
// the same day keep their original fetch order.
func SortRows(rows []ReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
}
