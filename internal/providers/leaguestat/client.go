package leaguestat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"pwhl-schedule-service/internal/providers"
	"pwhl-schedule-service/internal/seasons"
)

// Config controls how the client reaches the upstream feed.
type Config struct {
	BaseURL    string
	Key        string
	ClientCode string
	HTTPClient *http.Client
}

// Client fetches raw schedule rows for one season from the statview feed.
// It performs a single request per call and keeps no state between calls;
// retry policy belongs to the decorators in the parent package.
type Client struct {
	baseURL    string
	key        string
	clientCode string
	httpClient httpDoer
}

// NewClient constructs a feed client with the provided configuration.
func NewClient(cfg Config) *Client {
	key := cfg.Key
	if key == "" {
		key = defaultKey
	}
	clientCode := cfg.ClientCode
	if clientCode == "" {
		clientCode = defaultClientCode
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		key:        key,
		clientCode: clientCode,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchSchedule retrieves the raw schedule rows for the given season. The
// season identifier is validated against the registry before any network
// call. Rows are returned exactly as the feed shaped them; normalization is
// a separate step.
func (c *Client) FetchSchedule(ctx context.Context, seasonID int) ([]RawGameEntry, error) {
	if _, err := seasons.Resolve(seasonID); err != nil {
		return nil, err
	}

	req, err := c.buildRequest(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &providers.UpstreamUnavailableError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, &providers.UpstreamUnavailableError{Provider: providerName, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &providers.UpstreamUnavailableError{Provider: providerName, Err: err}
	}

	var envelope scheduleEnvelope
	if err := json.Unmarshal(stripJSONPWrapper(body), &envelope); err != nil {
		return nil, &providers.UpstreamMalformedError{Provider: providerName, Err: err}
	}

	return flattenEnvelope(envelope), nil
}

func (c *Client) buildRequest(ctx context.Context, seasonID int) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("feed", "statviewfeed")
	q.Set("view", "schedule")
	q.Set("team", "-1")
	q.Set("season", strconv.Itoa(seasonID))
	q.Set("month", "-1")
	q.Set("location", "homeaway")
	q.Set("key", c.key)
	q.Set("client_code", c.clientCode)
	q.Set("site_id", "0")
	q.Set("league_id", "1")
	q.Set("conference_id", "-1")
	q.Set("division_id", "-1")
	q.Set("lang", "en")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

// flattenEnvelope pulls rows out of the first section of the first element.
// A parsed envelope with no sections or rows is an empty schedule, not an error.
func flattenEnvelope(envelope scheduleEnvelope) []RawGameEntry {
	if len(envelope) == 0 || len(envelope[0].Sections) == 0 {
		return []RawGameEntry{}
	}
	data := envelope[0].Sections[0].Data
	entries := make([]RawGameEntry, 0, len(data))
	for _, row := range data {
		entries = append(entries, row.Row)
	}
	return entries
}
