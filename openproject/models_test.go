package openproject

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeEntry_UnmarshalHALPayload(t *testing.T) {
	t.Parallel()

	payload := []byte(`{
		"id": 91,
		"spentOn": "2024-01-03",
		"hours": "PT4H30M",
		"comment": {"format": "plain", "raw": "Fixed bug", "html": "<p>Fixed bug</p>"},
		"customField7": "Berlin",
		"customField11": 3,
		"_links": {
			"self": {"href": "/api/v3/time_entries/91"},
			"entity": {"href": "/api/v3/work_packages/1234", "title": "Payments rework"},
			"activity": {"href": "/api/v3/time_entries/activities/2", "title": "Development"},
			"customField9": {"href": "/api/v3/custom_options/42", "title": "Berlin"}
		}
	}`)

	var entry TimeEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		t.Fatalf("unmarshal time entry: %v", err)
	}

	if entry.ID != 91 {
		t.Fatalf("unexpected id: %d", entry.ID)
	}
	want := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	if !entry.SpentOn.Equal(want) {
		t.Fatalf("unexpected spentOn: %v", entry.SpentOn)
	}
	if entry.Hours != "PT4H30M" {
		t.Fatalf("unexpected hours: %q", entry.Hours)
	}
	if entry.Comment != "Fixed bug" {
		t.Fatalf("unexpected comment: %q", entry.Comment)
	}
	if entry.EntityHref != "/api/v3/work_packages/1234" || entry.EntityTitle != "Payments rework" {
		t.Fatalf("unexpected entity link: %q %q", entry.EntityHref, entry.EntityTitle)
	}
	if entry.ActivityName != "Development" {
		t.Fatalf("unexpected activity: %q", entry.ActivityName)
	}
	if entry.CustomFields["customField7"] != "Berlin" {
		t.Fatalf("unexpected customField7: %q", entry.CustomFields["customField7"])
	}
	if entry.CustomFields["customField11"] != "3" {
		t.Fatalf("expected numeric custom field as string, got %q", entry.CustomFields["customField11"])
	}
	if entry.CustomLinks["customField9"] != "/api/v3/custom_options/42" {
		t.Fatalf("unexpected customField9 link: %q", entry.CustomLinks["customField9"])
	}
	if _, ok := entry.CustomLinks["self"]; ok {
		t.Fatalf("self link must not be captured as a custom field")
	}
}

func TestTimeEntry_UnmarshalRejectsBadSpentOn(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"id": 5, "spentOn": "03.01.2024", "hours": "PT1H"}`)
	var entry TimeEntry
	if err := json.Unmarshal(payload, &entry); err == nil {
		t.Fatalf("expected error for malformed spentOn")
	}
}

func TestTimeEntry_EntityID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		href string
		want string
	}{
		{"/api/v3/work_packages/1234", "1234"},
		{"https://openproject.example.com/api/v3/work_packages/8", "8"},
		{"/api/v3/work_packages/77?foo=bar", "77"},
		{"", ""},
	}

	for _, tc := range cases {
		entry := TimeEntry{EntityHref: tc.href}
		if got := entry.EntityID(); got != tc.want {
			t.Fatalf("href %q: expected %q, got %q", tc.href, tc.want, got)
		}
	}
}

func TestCollectionPage_HasMore(t *testing.T) {
	t.Parallel()

	withNext := collectionPage{Count: 10, PageSize: 10}
	withNext.Links.NextByOffset = &halLink{Href: "/api/v3/time_entries?offset=2"}
	if !withNext.hasMore(10) {
		t.Fatalf("nextByOffset link must signal more pages")
	}

	fullPage := collectionPage{Count: 10, PageSize: 10}
	if !fullPage.hasMore(10) {
		t.Fatalf("full page without link must imply possibly more")
	}

	shortPage := collectionPage{Count: 3, PageSize: 10}
	if shortPage.hasMore(10) {
		t.Fatalf("short page without link must terminate")
	}

	emptyPage := collectionPage{Count: 0, PageSize: 0}
	if emptyPage.hasMore(10) {
		t.Fatalf("empty page must terminate")
	}

	// Some responses omit the echoed pageSize; fall back to the requested one.
	noEcho := collectionPage{Count: 10}
	if !noEcho.hasMore(10) {
		t.Fatalf("full page judged by requested size must imply more")
	}
}
