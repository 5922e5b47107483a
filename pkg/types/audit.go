package types

// Audit severity levels, stored verbatim in the logs table.
const (
	LevelSuccess  = "SUCCESS"
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
)

// AuditEvent is one append-only row of the activity log. Events are
// never updated or deleted by the application.
type AuditEvent struct {
	ID           int64
	Timestamp    string
	Level        string
	SourceModule string
	ErrorType    string
	Message      string
	SystemName   string
}

// AuditFilter narrows Events reads. Empty fields are ignored.
type AuditFilter struct {
	Level        string
	SourceModule string
	ErrorType    string
}

// AuditColumns lists the columns DistinctValues accepts. Anything else
// is rejected before touching the store.
var AuditColumns = []string{"level", "source_module", "error_type"}
