package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldSeason     = "season_id"
	FieldEntryIndex = "entry_index"
	FieldBackend    = "backend"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
)
