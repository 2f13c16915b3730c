package timesheet

import "strings"

// DefaultLocation is reported when no location custom field is configured
// or the entry carries no value for it. Absence is a normal case, not an
// error.
const DefaultLocation = "remote"

// ResolveLocation returns the location recorded under the configured custom
// field key, falling back to DefaultLocation for missing or empty values.
func ResolveLocation(fields map[string]string, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultLocation
	}
	if value := strings.TrimSpace(fields[key]); value != "" {
		return value
	}
	return DefaultLocation
}
