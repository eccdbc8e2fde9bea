package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"taskboard/internal/domain"
	"taskboard/internal/live"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func setup(t *testing.T) (*pgxpool.Pool, *service.TaskService, *service.TaskQueryService) {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	if err := repository.NewMaintenanceRepository(db).TruncateAll(context.Background()); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return db, service.NewTaskService(db, live.NewBus()), service.NewTaskQueryService(db)
}

func createTask(t *testing.T, tasks *service.TaskService, title string, completed bool) *domain.Task {
	t.Helper()
	task := &domain.Task{Title: title, Completed: completed}
	if err := tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestToggleCompletedFlipsAndAppends(t *testing.T) {
	_, tasks, queries := setup(t)
	ctx := context.Background()

	task := createTask(t, tasks, "write weekly report", false)

	got, err := tasks.ToggleCompleted(ctx, task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !got.Completed {
		t.Fatal("completion flag not inverted")
	}
	if got.UpdatedAt == nil {
		t.Fatal("updated timestamp not set")
	}

	history, err := queries.TaskHistory(ctx, task.ID, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected exactly 1 history entry, got %d", len(history))
	}
	if history[0].Kind != domain.KindCompletion || history[0].NewValue != true {
		t.Fatalf("history entry = %+v; want completion/true", history[0])
	}
}

func TestDoubleToggleRestoresFlagKeepsBothEntries(t *testing.T) {
	_, tasks, queries := setup(t)
	ctx := context.Background()

	task := createTask(t, tasks, "fix flaky test", false)

	if _, err := tasks.ToggleCompleted(ctx, task.ID); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	got, err := tasks.ToggleCompleted(ctx, task.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}

	if got.Completed {
		t.Fatal("two toggles must restore the original flag")
	}
	history, err := queries.TaskHistory(ctx, task.ID, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
}

func TestToggleMissingTaskFails(t *testing.T) {
	_, tasks, _ := setup(t)

	if _, err := tasks.ToggleCompleted(context.Background(), 999999); err != service.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestToggleImportantRecordsImportanceKind(t *testing.T) {
	_, tasks, queries := setup(t)
	ctx := context.Background()

	task := createTask(t, tasks, "plan sprint", false)

	got, err := tasks.ToggleImportant(ctx, task.ID)
	if err != nil {
		t.Fatalf("toggle important: %v", err)
	}
	if !got.Important {
		t.Fatal("importance flag not inverted")
	}

	history, err := queries.TaskHistory(ctx, task.ID, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Kind != domain.KindImportance {
		t.Fatalf("expected one importance entry, got %+v", history)
	}
}

func TestTaskHistoryLimitZeroReturnsEverything(t *testing.T) {
	_, tasks, queries := setup(t)
	ctx := context.Background()

	task := createTask(t, tasks, "tidy desk", false)
	for i := 0; i < 3; i++ {
		if _, err := tasks.ToggleCompleted(ctx, task.ID); err != nil {
			t.Fatalf("toggle %d: %v", i+1, err)
		}
	}

	capped, err := queries.TaskHistory(ctx, task.ID, 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(capped) != 2 {
		t.Fatalf("limit 2 returned %d entries", len(capped))
	}

	full, err := queries.TaskHistory(ctx, task.ID, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(full) != 3 {
		t.Fatalf("limit 0 returned %d entries; want all 3", len(full))
	}
}

func TestSetAllCompletedSkipsAlreadyCompleted(t *testing.T) {
	_, tasks, queries := setup(t)
	ctx := context.Background()

	done := createTask(t, tasks, "already done", true)
	todo1 := createTask(t, tasks, "todo one", false)
	todo2 := createTask(t, tasks, "todo two", false)

	ids := []int64{done.ID, todo1.ID, todo2.ID, 424242} // last one missing

	processed, err := tasks.SetAllCompleted(ctx, ids, true)
	if err != nil {
		t.Fatalf("set all: %v", err)
	}
	if processed != 2 {
		t.Fatalf("processed = %d; want 2 (the previously-incomplete tasks)", processed)
	}

	// no spurious entry for the already-completed task
	history, err := queries.TaskHistory(ctx, done.ID, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("skipped task must get no history entry, got %d", len(history))
	}

	for _, id := range []int64{todo1.ID, todo2.ID} {
		history, err := queries.TaskHistory(ctx, id, 0)
		if err != nil {
			t.Fatalf("history: %v", err)
		}
		if len(history) != 1 || history[0].NewValue != true {
			t.Fatalf("task %d: expected one completion-to-true entry, got %+v", id, history)
		}
	}
}

func TestListEnrichedSearchAndCounts(t *testing.T) {
	_, tasks, queries := setup(t)
	ctx := context.Background()

	groceries := createTask(t, tasks, "Buy groceries", false)
	createTask(t, tasks, "Walk the dog", false)

	if _, err := tasks.ToggleCompleted(ctx, groceries.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	got, err := queries.ListEnriched(ctx, "GROCER", nil)
	if err != nil {
		t.Fatalf("list enriched: %v", err)
	}
	if len(got) != 1 || got[0].ID != groceries.ID {
		t.Fatalf("case-insensitive search returned %+v", got)
	}
	if got[0].HistoryCount != 1 {
		t.Fatalf("history count = %d; want 1", got[0].HistoryCount)
	}

	// whitespace-only search equals no search
	all, err := queries.ListEnriched(ctx, "   ", nil)
	if err != nil {
		t.Fatalf("list enriched: %v", err)
	}
	noFilter, err := queries.ListEnriched(ctx, "", nil)
	if err != nil {
		t.Fatalf("list enriched: %v", err)
	}
	if len(all) != len(noFilter) || len(all) != 2 {
		t.Fatalf("whitespace search returned %d tasks, no filter %d; want 2 and 2", len(all), len(noFilter))
	}
}

func TestSearchTreatsPatternCharactersLiterally(t *testing.T) {
	_, tasks, queries := setup(t)
	ctx := context.Background()

	literal := createTask(t, tasks, "rename a_c helper", false)
	createTask(t, tasks, "rename abc helper", false)
	percent := createTask(t, tasks, "cut 50% of backlog", false)

	got, err := queries.ListEnriched(ctx, "a_c", nil)
	if err != nil {
		t.Fatalf("list enriched: %v", err)
	}
	if len(got) != 1 || got[0].ID != literal.ID {
		t.Fatalf("underscore search returned %+v; want only task %d", got, literal.ID)
	}

	got, err = queries.ListEnriched(ctx, "50%", nil)
	if err != nil {
		t.Fatalf("list enriched: %v", err)
	}
	if len(got) != 1 || got[0].ID != percent.ID {
		t.Fatalf("percent search returned %+v; want only task %d", got, percent.ID)
	}
}

func TestEmptyStore(t *testing.T) {
	_, _, queries := setup(t)

	got, err := queries.ListEnriched(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("list enriched on empty store: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
}

func TestUserFilterRestrictsEnrichedList(t *testing.T) {
	db, tasks, queries := setup(t)
	ctx := context.Background()

	users := repository.NewUserRepository(db)
	ada := domain.User{Name: "Ada"}
	brian := domain.User{Name: "Brian"}
	if err := users.Create(ctx, &ada); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := users.Create(ctx, &brian); err != nil {
		t.Fatalf("create user: %v", err)
	}

	mine := &domain.Task{Title: "mine", UserID: ada.ID}
	theirs := &domain.Task{Title: "theirs", UserID: brian.ID}
	if err := tasks.Create(ctx, mine); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := tasks.Create(ctx, theirs); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := queries.ListEnriched(ctx, "", []int64{ada.ID})
	if err != nil {
		t.Fatalf("list enriched: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("user filter returned %+v; want only task %d", got, mine.ID)
	}
}
