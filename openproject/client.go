package openproject

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultPageSize bounds a single time-entries request.
	DefaultPageSize = 200

	// DefaultTimeout bounds each outbound HTTP call.
	DefaultTimeout = 30 * time.Second

	timeEntriesPath = "/api/v3/time_entries"

	// OpenProject API keys authenticate as basic auth with this fixed user.
	basicAuthUser = "apikey"
)

// Client defines the OpenProject API operations the exporter needs.
type Client interface {
	AllTimeEntries(ctx context.Context, query TimeEntriesQuery) ([]TimeEntry, error)
	CustomOptionValue(ctx context.Context, href string) (string, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient httpDoer
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient httpDoer

	optionMu    sync.Mutex
	optionCache map[string]string
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	doer := cfg.HTTPClient
	if doer == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}

	return &HTTPClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		userAgent:   strings.TrimSpace(cfg.UserAgent),
		httpClient:  doer,
		optionCache: map[string]string{},
	}, nil
}

// TimeEntriesQuery selects the entries to fetch: a user ("me" or a numeric
// id) and an inclusive spent-on date range.
type TimeEntriesQuery struct {
	UserID   string
	From     time.Time
	To       time.Time
	PageSize int
}

// FetchError reports a failed page retrieval. The export is all-or-nothing,
// so a FetchError always means zero entries were returned.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch time entries page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AllTimeEntries walks the paginated time-entries collection and returns the
// complete result set in server order. Pages are fetched sequentially; each
// continuation decision depends on the previous response.
func (c *HTTPClient) AllTimeEntries(ctx context.Context, query TimeEntriesQuery) ([]TimeEntry, error) {
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filters, err := encodeFilters(query)
	if err != nil {
		return nil, err
	}

	entries := make([]TimeEntry, 0, pageSize)
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("filters", filters)
		params.Set("pageSize", strconv.Itoa(pageSize))
		params.Set("sortBy", `[["spent_on","asc"],["id","asc"]]`)
		params.Set("offset", strconv.Itoa(page))

		var resp collectionPage
		if err := c.getJSON(ctx, timeEntriesPath+"?"+params.Encode(), &resp); err != nil {
			return nil, &FetchError{Page: page, Err: err}
		}

		entries = append(entries, resp.Embedded.Elements...)
		if !resp.hasMore(pageSize) {
			break
		}
	}

	return entries, nil
}

func encodeFilters(query TimeEntriesQuery) (string, error) {
	userID := strings.TrimSpace(query.UserID)
	if userID == "" {
		userID = "me"
	}
	filters := []map[string]any{
		{"spent_on": map[string]any{
			"operator": "<>d",
			"values":   []string{query.From.Format(spentOnLayout), query.To.Format(spentOnLayout)},
		}},
		{"user_id": map[string]any{
			"operator": "=",
			"values":   []string{userID},
		}},
	}
	encoded, err := json.Marshal(filters)
	if err != nil {
		return "", fmt.Errorf("encode time entry filters: %w", err)
	}
	return string(encoded), nil
}

// CustomOptionValue resolves a list-type custom field href such as
// "/api/v3/custom_options/42" to the option's display value. Results are
// cached per client, the same option repeats across a month of entries.
func (c *HTTPClient) CustomOptionValue(ctx context.Context, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", errors.New("custom option href is empty")
	}

	c.optionMu.Lock()
	cached, ok := c.optionCache[href]
	c.optionMu.Unlock()
	if ok {
		return cached, nil
	}

	var out struct {
		Value string `json:"value"`
	}
	if err := c.getJSON(ctx, href, &out); err != nil {
		return "", err
	}

	c.optionMu.Lock()
	c.optionCache[href] = out.Value
	c.optionMu.Unlock()

	return out.Value, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpointPath string, out any) error {
	requestURL := endpointPath
	if !strings.HasPrefix(requestURL, "http://") && !strings.HasPrefix(requestURL, "https://") {
		if !strings.HasPrefix(requestURL, "/") {
			requestURL = "/" + requestURL
		}
		requestURL = c.baseURL + requestURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request GET %s: %w", endpointPath, err)
	}

	req.SetBasicAuth(basicAuthUser, c.apiKey)
	req.Header.Set("Accept", "application/hal+json, application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request GET %s failed: %w", endpointPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf(
			"request GET %s failed with status %d: %s",
			endpointPath,
			resp.StatusCode,
			strings.TrimSpace(string(responseBody)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response GET %s: %w", endpointPath, err)
	}
	return nil
}
