package domain

import "time"

// QuickDurationMax is the boundary of the "quick" duration bucket, in minutes.
// Tasks at or below it are quick, everything above is long. A task without a
// stored duration counts as 0 and therefore lands in the quick bucket.
const QuickDurationMax = 15

// Task is a to-do item. Nullable columns are normalized once when a row is
// scanned: absent importance becomes false, absent duration becomes 0, absent
// description becomes "". Only the two timestamps stay optional, because a
// missing value is meaningful there (legacy row / never mutated).
type Task struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Completed       bool       `json:"completed"`
	Important       bool       `json:"important"`
	DurationMinutes int        `json:"duration_minutes"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	UserID          int64      `json:"user_id,omitempty"`
}

// EnrichedTask is a task annotated with the number of history entries that
// reference it.
type EnrichedTask struct {
	Task
	HistoryCount int `json:"history_count"`
}

// Quick reports whether the task falls into the quick duration bucket.
func (t Task) Quick() bool {
	return t.DurationMinutes <= QuickDurationMax
}

// Inactive reports whether the task was never mutated after creation: no
// updated timestamp at all, or one equal to the creation timestamp.
func (t Task) Inactive() bool {
	if t.UpdatedAt == nil {
		return true
	}
	return t.CreatedAt != nil && t.UpdatedAt.Equal(*t.CreatedAt)
}

// CreatedUnix returns the creation timestamp in unix milliseconds, 0 when the
// row predates the column.
func (t Task) CreatedUnix() int64 {
	if t.CreatedAt == nil {
		return 0
	}
	return t.CreatedAt.UnixMilli()
}

// UpdatedUnix returns the updated timestamp in unix milliseconds, 0 when the
// task was never mutated.
func (t Task) UpdatedUnix() int64 {
	if t.UpdatedAt == nil {
		return 0
	}
	return t.UpdatedAt.UnixMilli()
}
