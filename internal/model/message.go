package model

// SummaryMessage is a diagnostic attached to a day summary. Messages never
// change the computed numbers.
type SummaryMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelWarning = "WARNING"
	LevelInfo    = "INFO"
)

const (
	CodeNoPunchData          = "NO_PUNCH_DATA"
	CodeOrphanOut            = "ORPHAN_OUT"
	CodeOpenSession          = "OPEN_SESSION"
	CodeUnparseableTimestamp = "UNPARSEABLE_TIMESTAMP"
	CodeIgnoredPunchType     = "IGNORED_PUNCH_TYPE"
	CodeBreakExceedsShift    = "BREAK_EXCEEDS_SHIFT"
	CodeSupersededIn         = "SUPERSEDED_IN"
)
