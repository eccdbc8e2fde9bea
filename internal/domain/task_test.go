package domain

import (
	"testing"
	"time"
)

func TestQuick(t *testing.T) {
	cases := []struct {
		minutes int
		want    bool
	}{
		{0, true},
		{15, true},
		{16, false},
		{120, false},
	}

	for _, tc := range cases {
		task := Task{DurationMinutes: tc.minutes}
		if got := task.Quick(); got != tc.want {
			t.Fatalf("Quick() with %d minutes = %v; want %v", tc.minutes, got, tc.want)
		}
	}
}

func TestInactive(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"never updated", Task{CreatedAt: &created}, true},
		{"legacy row without timestamps", Task{}, true},
		{"updated equals created", Task{CreatedAt: &created, UpdatedAt: &created}, true},
		{"updated after created", Task{CreatedAt: &created, UpdatedAt: &updated}, false},
		{"updated without created", Task{UpdatedAt: &updated}, false},
	}

	for _, tc := range cases {
		if got := tc.task.Inactive(); got != tc.want {
			t.Fatalf("%s: Inactive() = %v; want %v", tc.name, got, tc.want)
		}
	}
}

func TestUpdatedUnixMissing(t *testing.T) {
	if got := (Task{}).UpdatedUnix(); got != 0 {
		t.Fatalf("UpdatedUnix() on never-updated task = %d; want 0", got)
	}
	ts := time.UnixMilli(1700000000000).UTC()
	if got := (Task{UpdatedAt: &ts}).UpdatedUnix(); got != 1700000000000 {
		t.Fatalf("UpdatedUnix() = %d; want 1700000000000", got)
	}
}

func TestKindOrDefault(t *testing.T) {
	imp := "importance"
	empty := ""

	if got := KindOrDefault(nil); got != KindCompletion {
		t.Fatalf("KindOrDefault(nil) = %s; want %s", got, KindCompletion)
	}
	if got := KindOrDefault(&empty); got != KindCompletion {
		t.Fatalf("KindOrDefault(empty) = %s; want %s", got, KindCompletion)
	}
	if got := KindOrDefault(&imp); got != KindImportance {
		t.Fatalf("KindOrDefault(importance) = %s; want %s", got, KindImportance)
	}
}
