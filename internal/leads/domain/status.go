package domain

import "strings"

// Status is the per-lead processing state.
type Status string

const (
	StatusProcessing   Status = "PROCESSING"
	StatusQualified    Status = "QUALIFIED"
	StatusDisqualified Status = "DISQUALIFIED"
	StatusError        Status = "ERROR"
)

// IsTerminal reports whether no further automatic transition occurs.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusQualified, StatusDisqualified, StatusError:
		return true
	}
	return false
}

// CanTransition reports whether the state machine permits moving from s to
// next. The only legal moves are PROCESSING to a terminal status.
func (s Status) CanTransition(next Status) bool {
	return s == StatusProcessing && next.IsTerminal()
}

// ClassifyFinalStatus maps the upstream service's free-form status string to
// a terminal Status. Matching is case-insensitive. Anything unrecognized,
// including the empty string, classifies as QUALIFIED: ambiguous verdicts are
// deliberately surfaced for human review rather than silently dropped.
func ClassifyFinalStatus(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(StatusDisqualified):
		return StatusDisqualified
	case string(StatusQualified):
		return StatusQualified
	default:
		return StatusQualified
	}
}
