package leaguestat

import "time"

const providerName = "leaguestat"

const (
	defaultBaseURL     = "https://lscluster.hockeytech.com/feed/index.php"
	defaultKey         = "446521baf8c38984"
	defaultClientCode  = "pwhl"
	defaultHTTPTimeout = 10 * time.Second

	// The feed rejects requests without a browser-ish User-Agent.
	userAgent = "Mozilla/5.0 (compatible; pwhl-schedule-service)"
)
