package openproject

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const spentOnLayout = "2006-01-02"

// customFieldPrefix marks the dynamic attribute keys OpenProject generates
// for user-defined fields (customField7, customField12, ...).
const customFieldPrefix = "customField"

type halLink struct {
	Href  string `json:"href"`
	Title string `json:"title"`
}

// TimeEntry is one logged unit of work as returned by /api/v3/time_entries.
// Immutable once fetched; custom fields are captured into plain maps because
// their keys are instance-specific.
type TimeEntry struct {
	ID           int64
	SpentOn      time.Time
	Hours        string
	Comment      string
	EntityHref   string
	EntityTitle  string
	ActivityName string

	// CustomFields holds scalar custom-field properties by key.
	// CustomLinks holds hrefs of list-type custom fields, which must be
	// resolved through /api/v3/custom_options/{id}.
	CustomFields map[string]string
	CustomLinks  map[string]string
}

func (e *TimeEntry) UnmarshalJSON(data []byte) error {
	var known struct {
		ID      int64  `json:"id"`
		SpentOn string `json:"spentOn"`
		Hours   string `json:"hours"`
		Comment struct {
			Raw string `json:"raw"`
		} `json:"comment"`
		Links map[string]halLink `json:"_links"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return fmt.Errorf("decode time entry: %w", err)
	}

	entry := TimeEntry{
		ID:           known.ID,
		Hours:        known.Hours,
		Comment:      known.Comment.Raw,
		CustomFields: map[string]string{},
		CustomLinks:  map[string]string{},
	}

	if known.SpentOn != "" {
		spentOn, err := time.ParseInLocation(spentOnLayout, known.SpentOn, time.UTC)
		if err != nil {
			return fmt.Errorf("decode time entry %d: parse spentOn %q: %w", known.ID, known.SpentOn, err)
		}
		entry.SpentOn = spentOn
	}

	if entity, ok := known.Links["entity"]; ok {
		entry.EntityHref = entity.Href
		entry.EntityTitle = entity.Title
	}
	if activity, ok := known.Links["activity"]; ok {
		entry.ActivityName = activity.Title
	}
	for key, link := range known.Links {
		if strings.HasPrefix(key, customFieldPrefix) && link.Href != "" {
			entry.CustomLinks[key] = link.Href
		}
	}

	// Second pass for the dynamic top-level customFieldN properties.
	var properties map[string]json.RawMessage
	if err := json.Unmarshal(data, &properties); err != nil {
		return fmt.Errorf("decode time entry %d properties: %w", known.ID, err)
	}
	for key, raw := range properties {
		if !strings.HasPrefix(key, customFieldPrefix) {
			continue
		}
		if value, ok := scalarString(raw); ok && value != "" {
			entry.CustomFields[key] = value
		}
	}

	*e = entry
	return nil
}

func scalarString(raw json.RawMessage) (string, bool) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, true
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber.String(), true
	}
	var asBool bool
	if err := json.Unmarshal(raw, &asBool); err == nil {
		return fmt.Sprintf("%t", asBool), true
	}
	return "", false
}

// EntityID extracts the numeric identifier from the entity href, e.g.
// "/api/v3/work_packages/1234" -> "1234". Empty when the link is missing.
func (e TimeEntry) EntityID() string {
	if e.EntityHref == "" {
		return ""
	}
	parsed, err := url.Parse(e.EntityHref)
	if err != nil {
		return ""
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}

// collectionPage is one page of a HAL paginated collection.
type collectionPage struct {
	Total    int `json:"total"`
	Count    int `json:"count"`
	PageSize int `json:"pageSize"`
	Offset   int `json:"offset"`
	Embedded struct {
		Elements []TimeEntry `json:"elements"`
	} `json:"_embedded"`
	Links struct {
		NextByOffset *halLink `json:"nextByOffset"`
	} `json:"_links"`
}

// hasMore reports whether another page should be requested. The server's
// nextByOffset link is authoritative; counting pages upfront would truncate
// or loop when the total changes between requests. Without the link, a full
// page implies possibly more.
func (p collectionPage) hasMore(requestedPageSize int) bool {
	if p.Links.NextByOffset != nil && p.Links.NextByOffset.Href != "" {
		return true
	}
	effective := p.PageSize
	if effective <= 0 {
		effective = requestedPageSize
	}
	return p.Count > 0 && p.Count == effective
}
