package timesheet

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"opexport/openproject"
)

// UserSelectorMe asks the server to filter on the authenticated user.
const UserSelectorMe = "me"

// ConfigError reports invalid exporter input, detected before any network
// call is made.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ExportConfig carries everything one export run needs. There is no
// process-wide state; each Exporter is built from an explicit config.
type ExportConfig struct {
	BaseURL       string
	APIKey        string
	Month         Month
	User          string // numeric user id or UserSelectorMe
	LocationField string // custom field key such as "customField7", optional
	PageSize      int
	Timeout       time.Duration
	UserAgent     string
}

// Exporter retrieves a month of time entries and normalizes them into
// ordered report rows. Stateless between Run calls.
type Exporter struct {
	client openproject.Client
	cfg    ExportConfig
}

// NewExporter validates the configuration and wires an OpenProject client
// for it.
func NewExporter(cfg ExportConfig) (*Exporter, error) {
	if err := validateExportConfig(cfg); err != nil {
		return nil, err
	}

	client, err := openproject.NewClient(openproject.ClientConfig{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return nil, &ConfigError{Field: "connection", Reason: err.Error()}
	}

	return &Exporter{client: client, cfg: cfg}, nil
}

// NewExporterWithClient wires a preconstructed client. Callers owning the
// transport (and tests) use this; BaseURL/APIKey in cfg are ignored.
func NewExporterWithClient(client openproject.Client, cfg ExportConfig) (*Exporter, error) {
	if client == nil {
		return nil, &ConfigError{Field: "client", Reason: "client is required"}
	}
	if err := validateExportConfig(cfg); err != nil {
		return nil, err
	}
	return &Exporter{client: client, cfg: cfg}, nil
}

func validateExportConfig(cfg ExportConfig) error {
	if cfg.Month.IsZero() {
		return &ConfigError{Field: "month", Reason: "month is required"}
	}
	if cfg.Month.Month < time.January || cfg.Month.Month > time.December {
		return &ConfigError{Field: "month", Reason: fmt.Sprintf("month number %d out of range", int(cfg.Month.Month))}
	}

	user := strings.TrimSpace(cfg.User)
	if user != "" && user != UserSelectorMe {
		id, err := strconv.Atoi(user)
		if err != nil || id <= 0 {
			return &ConfigError{Field: "user", Reason: fmt.Sprintf("%q is neither %q nor a positive user id", cfg.User, UserSelectorMe)}
		}
	}

	if cfg.PageSize < 0 {
		return &ConfigError{Field: "page size", Reason: fmt.Sprintf("%d must not be negative", cfg.PageSize)}
	}

	return nil
}

// Run fetches all entries for the configured month and user and returns the
// ordered report rows. All-or-nothing: the first failing stage aborts the
// run and no partial rows are returned.
func (e *Exporter) Run(ctx context.Context) ([]ReportRow, error) {
	first, last := e.cfg.Month.Bounds()

	entries, err := e.client.AllTimeEntries(ctx, openproject.TimeEntriesQuery{
		UserID:   e.userSelector(),
		From:     first,
		To:       last,
		PageSize: e.cfg.PageSize,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(entries))
	for _, entry := range entries {
		location, err := e.locationFor(ctx, entry)
		if err != nil {
			return nil, err
		}

		row, err := NewRow(entry, location)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	SortRows(rows)
	return rows, nil
}

func (e *Exporter) userSelector() string {
	user := strings.TrimSpace(e.cfg.User)
	if user == "" {
		return UserSelectorMe
	}
	return user
}

// locationFor resolves the configured location custom field for one entry.
// Scalar fields resolve locally; list-type fields carry an option href that
// is fetched through the client (cached there).
func (e *Exporter) locationFor(ctx context.Context, entry openproject.TimeEntry) (string, error) {
	key := strings.TrimSpace(e.cfg.LocationField)
	if key == "" {
		return DefaultLocation, nil
	}

	if value := strings.TrimSpace(entry.CustomFields[key]); value != "" {
		return value, nil
	}

	href := entry.CustomLinks[key]
	if href == "" {
		return DefaultLocation, nil
	}

	value, err := e.client.CustomOptionValue(ctx, href)
	if err != nil {
		return "", fmt.Errorf("resolve location option for time entry %d: %w", entry.ID, err)
	}
	return ResolveLocation(map[string]string{key: value}, key), nil
}
