package leaguestat

import (
	"bytes"
	"net/http"
	"strings"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

// stripJSONPWrapper removes the single pair of parentheses the feed wraps
// its JSON body in. Bodies without the wrapper pass through unchanged.
func stripJSONPWrapper(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) >= 2 && trimmed[0] == '(' && trimmed[len(trimmed)-1] == ')' {
		return trimmed[1 : len(trimmed)-1]
	}
	return trimmed
}
