package taskview

import (
	"sort"

	"taskboard/internal/domain"
)

// SortKey names one of the eight total orders.
type SortKey string

const (
	SortLatest     SortKey = "latest"     // updated desc, missing = 0
	SortInactive   SortKey = "inactive"   // updated asc
	SortNewest     SortKey = "newest"     // created desc
	SortOldest     SortKey = "oldest"     // created asc
	SortFrequent   SortKey = "frequent"   // history count desc
	SortUnfrequent SortKey = "unfrequent" // history count asc
	SortQuickest   SortKey = "quickest"   // duration asc, missing = 0
	SortLongest    SortKey = "longest"    // duration desc, missing = 0
)

// ParseSortKey maps a query value to a sort key, falling back to latest.
func ParseSortKey(v string) SortKey {
	switch SortKey(v) {
	case SortLatest, SortInactive, SortNewest, SortOldest,
		SortFrequent, SortUnfrequent, SortQuickest, SortLongest:
		return SortKey(v)
	default:
		return SortLatest
	}
}

// Sort orders tasks in place by the given key. Ties keep input order: the
// original system left tie behavior to its runtime, here it is pinned to a
// stable sort.
func Sort(tasks []domain.EnrichedTask, key SortKey) {
	var less func(a, b domain.EnrichedTask) bool

	switch key {
	case SortInactive:
		less = func(a, b domain.EnrichedTask) bool { return a.UpdatedUnix() < b.UpdatedUnix() }
	case SortNewest:
		less = func(a, b domain.EnrichedTask) bool { return a.CreatedUnix() > b.CreatedUnix() }
	case SortOldest:
		less = func(a, b domain.EnrichedTask) bool { return a.CreatedUnix() < b.CreatedUnix() }
	case SortFrequent:
		less = func(a, b domain.EnrichedTask) bool { return a.HistoryCount > b.HistoryCount }
	case SortUnfrequent:
		less = func(a, b domain.EnrichedTask) bool { return a.HistoryCount < b.HistoryCount }
	case SortQuickest:
		less = func(a, b domain.EnrichedTask) bool { return a.DurationMinutes < b.DurationMinutes }
	case SortLongest:
		less = func(a, b domain.EnrichedTask) bool { return a.DurationMinutes > b.DurationMinutes }
	default: // SortLatest
		less = func(a, b domain.EnrichedTask) bool { return a.UpdatedUnix() > b.UpdatedUnix() }
	}

	sort.SliceStable(tasks, func(i, j int) bool { return less(tasks[i], tasks[j]) })
}
