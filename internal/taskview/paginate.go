package taskview

import "taskboard/internal/domain"

// Page increments used by the two clients' infinite scroll.
const (
	PageIncrementWeb    = 50
	PageIncrementMobile = 9
)

// Window is one visible slice of a filtered, sorted list.
type Window struct {
	Tasks        []domain.EnrichedTask `json:"tasks"`
	VisibleCount int                   `json:"visible_count"`
	HasMore      bool                  `json:"has_more"`
}

// Slice cuts the first visibleCount tasks out of the list. A non-positive
// count starts a fresh window at one page of the caller's increment.
func Slice(tasks []domain.EnrichedTask, visibleCount, increment int) Window {
	if increment <= 0 {
		increment = PageIncrementWeb
	}
	if visibleCount <= 0 {
		visibleCount = increment
	}

	n := visibleCount
	if n > len(tasks) {
		n = len(tasks)
	}

	return Window{
		Tasks:        tasks[:n],
		VisibleCount: n,
		HasMore:      len(tasks) > n,
	}
}

// NextVisibleCount grows the window by one page increment, for when the
// consumer scrolled to the end of the current slice.
func NextVisibleCount(current, increment int) int {
	if increment <= 0 {
		increment = PageIncrementWeb
	}
	if current < 0 {
		current = 0
	}
	return current + increment
}
