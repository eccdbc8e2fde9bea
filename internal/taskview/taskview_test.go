package taskview

import (
	"errors"
	"testing"
	"time"

	"taskboard/internal/domain"
)

func ts(ms int64) *time.Time {
	t := time.UnixMilli(ms).UTC()
	return &t
}

func task(id int64, completed, important bool, duration int, userID int64) domain.EnrichedTask {
	return domain.EnrichedTask{Task: domain.Task{
		ID:              id,
		Title:           "t",
		Completed:       completed,
		Important:       important,
		DurationMinutes: duration,
		UserID:          userID,
	}}
}

func ids(tasks []domain.EnrichedTask) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a []int64, b ...int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyStatusFilter(t *testing.T) {
	tasks := []domain.EnrichedTask{
		task(1, false, false, 0, 0),
		task(2, true, false, 0, 0),
	}

	cases := []struct {
		name string
		sel  Selection
		want []int64
	}{
		{"both", Selection{ShowCompleted: true, ShowIncomplete: true}, []int64{1, 2}},
		{"completed only", Selection{ShowCompleted: true}, []int64{2}},
		{"incomplete only", Selection{ShowIncomplete: true}, []int64{1}},
	}

	for _, tc := range cases {
		tc.sel.Sort = SortOldest
		got, err := Apply(tasks, tc.sel)
		if err != nil {
			t.Fatalf("%s: Apply: %v", tc.name, err)
		}
		if !equalIDs(ids(got), tc.want...) {
			t.Fatalf("%s: got %v; want %v", tc.name, ids(got), tc.want)
		}
	}
}

func TestApplyRejectsEmptyStatusFilter(t *testing.T) {
	_, err := Apply(nil, Selection{})
	if !errors.Is(err, ErrNoStatusSelected) {
		t.Fatalf("Apply with both status toggles off: err = %v; want ErrNoStatusSelected", err)
	}
}

func TestToggleStatusKeepsOneActive(t *testing.T) {
	s := DefaultSelection()

	if !s.ToggleStatus(true) {
		t.Fatal("turning off completed while incomplete is on must be allowed")
	}
	if s.ToggleStatus(false) {
		t.Fatal("turning off the last active toggle must be refused")
	}
	if !s.ShowIncomplete {
		t.Fatal("refused toggle must not change the selection")
	}
	if !s.ToggleStatus(true) {
		t.Fatal("re-enabling completed must be allowed")
	}
}

func TestApplyDurationFilter(t *testing.T) {
	tasks := []domain.EnrichedTask{
		task(1, false, false, 10, 0),
		task(2, false, false, 0, 0), // no stored duration counts as quick
		task(3, false, false, 15, 0),
		task(4, false, false, 16, 0),
		task(5, false, false, 120, 0),
	}

	cases := []struct {
		filter DurationFilter
		want   []int64
	}{
		{DurationAll, []int64{1, 2, 3, 4, 5}},
		{DurationQuick, []int64{1, 2, 3}},
		{DurationLong, []int64{4, 5}},
	}

	for _, tc := range cases {
		sel := DefaultSelection()
		sel.Duration = tc.filter
		sel.Sort = SortOldest
		got, err := Apply(tasks, sel)
		if err != nil {
			t.Fatalf("Apply(%s): %v", tc.filter, err)
		}
		if !equalIDs(ids(got), tc.want...) {
			t.Fatalf("duration %s: got %v; want %v", tc.filter, ids(got), tc.want)
		}
	}
}

func TestApplyImportanceFilter(t *testing.T) {
	tasks := []domain.EnrichedTask{
		task(1, false, true, 0, 0),
		task(2, false, false, 0, 0),
	}

	cases := []struct {
		filter ImportanceFilter
		want   []int64
	}{
		{ImportanceAll, []int64{1, 2}},
		{ImportantOnly, []int64{1}},
		{NotImportant, []int64{2}},
	}

	for _, tc := range cases {
		sel := DefaultSelection()
		sel.Importance = tc.filter
		sel.Sort = SortOldest
		got, err := Apply(tasks, sel)
		if err != nil {
			t.Fatalf("Apply(%s): %v", tc.filter, err)
		}
		if !equalIDs(ids(got), tc.want...) {
			t.Fatalf("importance %s: got %v; want %v", tc.filter, ids(got), tc.want)
		}
	}
}

func TestApplyUserFilter(t *testing.T) {
	tasks := []domain.EnrichedTask{
		task(1, false, false, 0, 10),
		task(2, false, false, 0, 20),
		task(3, false, false, 0, 0), // unowned legacy task
	}

	sel := DefaultSelection()
	sel.Sort = SortOldest

	got, err := Apply(tasks, sel)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !equalIDs(ids(got), 1, 2, 3) {
		t.Fatalf("empty user set must mean all users; got %v", ids(got))
	}

	sel.UserIDs = []int64{10}
	got, err = Apply(tasks, sel)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !equalIDs(ids(got), 1) {
		t.Fatalf("user filter {10}: got %v; want [1]", ids(got))
	}
}

func TestScenarioQuickAndImportant(t *testing.T) {
	// T1 incomplete, not important, 10 min; T2 completed, important, 20 min.
	tasks := []domain.EnrichedTask{
		task(1, false, false, 10, 1),
		task(2, true, true, 20, 1),
	}

	sel := DefaultSelection()
	sel.Duration = DurationQuick
	got, err := Apply(tasks, sel)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !equalIDs(ids(got), 1) {
		t.Fatalf("quick filter: got %v; want [1]", ids(got))
	}

	sel = DefaultSelection()
	sel.Importance = ImportantOnly
	got, err = Apply(tasks, sel)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !equalIDs(ids(got), 2) {
		t.Fatalf("important filter: got %v; want [2]", ids(got))
	}
}
