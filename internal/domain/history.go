package domain

import "time"

// ChangeKind names the task field a history entry records a change of.
type ChangeKind string

const (
	KindCompletion ChangeKind = "completion"
	KindImportance ChangeKind = "importance"
)

// KindOrDefault maps a stored kind to its effective value. Rows written before
// the importance toggle existed carry no kind; those are completion changes.
func KindOrDefault(kind *string) ChangeKind {
	if kind == nil || *kind == "" {
		return KindCompletion
	}
	return ChangeKind(*kind)
}

// HistoryEntry is an immutable audit record of one completion or importance
// change. Entries are append-only; the mutator writes exactly one per flip.
type HistoryEntry struct {
	ID        int64      `json:"id"`
	TaskID    int64      `json:"task_id"`
	Kind      ChangeKind `json:"kind"`
	NewValue  bool       `json:"new_value"`
	ChangedAt time.Time  `json:"changed_at"`
}

// ChangeFeedEntry is a history entry joined with its task's title, for
// cross-task activity feeds.
type ChangeFeedEntry struct {
	HistoryEntry
	TaskTitle string `json:"task_title"`
}

// ChangeBucket is a per-day count of history entries.
type ChangeBucket struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}
