package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrSeason   = "season_id"
	AttrOutcome  = "outcome"
)

// Cache lookup outcomes.
const (
	OutcomeHit        = "hit"
	OutcomeMiss       = "miss"
	OutcomeStaleServe = "stale_serve"
)
