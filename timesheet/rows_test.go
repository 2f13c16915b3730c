package timesheet

import (
	"errors"
	"strings"
	"testing"
	"time"

	"opexport/openproject"
)

func TestComposeDescription(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		assignment string
		activity   string
		comment    string
		want       string
	}{
		{"all parts", "1234", "Development", "Fixed bug", "1234_Development_Fixed bug"},
		{"empty comment", "1234", "Development", "", "1234_Development"},
		{"only comment", "", "", "Standup", "Standup"},
		{"all empty", "", "", "", ""},
		{"multiline comment squashed", "9", "Review", "line one\nline  two", "9_Review_line one line two"},
		{"missing activity", "1234", "", "Fixed bug", "1234_Fixed bug"},
	}

	for _, tc := range cases {
		got := ComposeDescription(tc.assignment, tc.activity, tc.comment)
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
		if strings.HasSuffix(got, descriptionSeparator) || strings.HasPrefix(got, descriptionSeparator) {
			t.Fatalf("%s: dangling separator in %q", tc.name, got)
		}
	}
}

func TestNewRow(t *testing.T) {
	t.Parallel()

	entry := openproject.TimeEntry{
		ID:           91,
		SpentOn:      time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Hours:        "PT4H30M",
		Comment:      "Fixed bug",
		EntityHref:   "/api/v3/work_packages/1234",
		ActivityName: "Development",
	}

	row, err := NewRow(entry, "Berlin")
	if err != nil {
		t.Fatalf("new row: %v", err)
	}

	if !row.Date.Equal(entry.SpentOn) {
		t.Fatalf("unexpected date: %v", row.Date)
	}
	if row.Hours != 4.5 {
		t.Fatalf("expected 4.5 hours, got %v", row.Hours)
	}
	if row.Location != "Berlin" {
		t.Fatalf("unexpected location: %q", row.Location)
	}
	if row.Description != "1234_Development_Fixed bug" {
		t.Fatalf("unexpected description: %q", row.Description)
	}
}

func TestNewRow_BadDurationNamesEntry(t *testing.T) {
	t.Parallel()

	entry := openproject.TimeEntry{ID: 77, Hours: "ninety minutes"}
	_, err := NewRow(entry, DefaultLocation)
	if err == nil {
		t.Fatalf("expected error for malformed duration")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "77") {
		t.Fatalf("error should name the entry id: %v", err)
	}
	if !strings.Contains(err.Error(), "ninety minutes") {
		t.Fatalf("error should carry the raw duration: %v", err)
	}
}

func TestSortRows_StableWithinDay(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	rows := []ReportRow{
		{Date: day(10), Description: "third"},
		{Date: day(3), Description: "first"},
		{Date: day(3), Description: "second"},
	}

	SortRows(rows)

	want := []string{"first", "second", "third"}
	for i, description := range want {
		if rows[i].Description != description {
			t.Fatalf("position %d: expected %q, got %q", i, description, rows[i].Description)
		}
	}
}
