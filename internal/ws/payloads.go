package ws

import "taskboard/internal/domain"

const (
	// server -> client
	MsgSnapshot = "snapshot"
	MsgError    = "error"
)

// Snapshot is one fresh result of a subscriber's enriched query. Sent on
// subscribe and again after every mutation.
type Snapshot struct {
	Type  string                `json:"type"`
	Tasks []domain.EnrichedTask `json:"tasks"`
}

// ErrorMsg tells the subscriber its query could not be re-evaluated.
type ErrorMsg struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
