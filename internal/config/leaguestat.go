package config

// LeaguestatConfig controls how the leaguestat client reaches the upstream feed.
type LeaguestatConfig struct {
	BaseURL    string
	Key        string
	ClientCode string
	Timeout    Duration
}

func loadLeaguestat() LeaguestatConfig {
	return LeaguestatConfig{
		BaseURL:    envOrDefault(envLeaguestatBaseURL, defaultLeaguestatBaseURL),
		Key:        envOrDefault(envLeaguestatKey, defaultLeaguestatKey),
		ClientCode: envOrDefault(envLeaguestatClientCode, defaultLeaguestatClientCode),
		Timeout:    durationEnvOrDefault(envLeaguestatTimeout, defaultLeaguestatTimeout),
	}
}
