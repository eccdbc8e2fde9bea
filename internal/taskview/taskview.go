// Package taskview is the single implementation of the task list view logic:
// facet filtering, the eight total orders, visible-window pagination and the
// per-user statistics table. Every consumer (HTTP view endpoint, websocket
// snapshots, clients that want to slice locally) goes through this package
// instead of re-deriving the rules.
package taskview

import (
	"errors"

	"taskboard/internal/domain"
)

var ErrNoStatusSelected = errors.New("at least one of completed/incomplete must stay selected")

// DurationFilter is the three-way duration bucket selector.
type DurationFilter string

const (
	DurationAll   DurationFilter = "all"
	DurationQuick DurationFilter = "quick"
	DurationLong  DurationFilter = "long"
)

// ImportanceFilter is the three-way importance selector.
type ImportanceFilter string

const (
	ImportanceAll ImportanceFilter = "all"
	ImportantOnly ImportanceFilter = "important"
	NotImportant  ImportanceFilter = "not_important"
)

// Selection is one full set of view choices.
type Selection struct {
	ShowCompleted  bool
	ShowIncomplete bool
	Duration       DurationFilter
	Importance     ImportanceFilter
	UserIDs        []int64
	Sort           SortKey
}

// DefaultSelection shows everything, newest activity first.
func DefaultSelection() Selection {
	return Selection{
		ShowCompleted:  true,
		ShowIncomplete: true,
		Duration:       DurationAll,
		Importance:     ImportanceAll,
		Sort:           SortLatest,
	}
}

// Validate rejects a selection that would match nothing by construction. An
// empty status filter is meaningless, not "empty list".
func (s Selection) Validate() error {
	if !s.ShowCompleted && !s.ShowIncomplete {
		return ErrNoStatusSelected
	}
	return nil
}

// ToggleStatus flips one of the two status toggles and reports whether the
// flip was applied. Turning off the last active toggle is refused.
func (s *Selection) ToggleStatus(completed bool) bool {
	if completed {
		if s.ShowCompleted && !s.ShowIncomplete {
			return false
		}
		s.ShowCompleted = !s.ShowCompleted
	} else {
		if s.ShowIncomplete && !s.ShowCompleted {
			return false
		}
		s.ShowIncomplete = !s.ShowIncomplete
	}
	return true
}

func (s Selection) matches(t domain.EnrichedTask) bool {
	if t.Completed && !s.ShowCompleted {
		return false
	}
	if !t.Completed && !s.ShowIncomplete {
		return false
	}

	switch s.Duration {
	case DurationQuick:
		if !t.Quick() {
			return false
		}
	case DurationLong:
		if t.Quick() {
			return false
		}
	}

	switch s.Importance {
	case ImportantOnly:
		if !t.Important {
			return false
		}
	case NotImportant:
		if t.Important {
			return false
		}
	}

	if len(s.UserIDs) > 0 {
		found := false
		for _, id := range s.UserIDs {
			if t.UserID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Apply filters and sorts the enriched list according to the selection. The
// input slice is not modified.
func Apply(tasks []domain.EnrichedTask, s Selection) ([]domain.EnrichedTask, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	out := make([]domain.EnrichedTask, 0, len(tasks))
	for _, t := range tasks {
		if s.matches(t) {
			out = append(out, t)
		}
	}

	Sort(out, s.Sort)
	return out, nil
}
