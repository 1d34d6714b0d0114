package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldGameID     = "game_id"
	FieldPlayer     = "player"
	FieldSignal     = "signal"
	FieldProp       = "prop"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldPeriod     = "period"
	FieldClock      = "clock"
)
