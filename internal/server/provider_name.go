package server

import "strings"

// normalizeProviderName lower-cases the configured provider name, keeping
// metrics and log labels consistent across the wiring.
func normalizeProviderName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "leaguestat"
	}
	return name
}
