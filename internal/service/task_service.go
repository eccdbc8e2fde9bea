package service

import (
	"context"
	"errors"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/live"
	"taskboard/internal/metrics"
	"taskboard/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTaskNotFound = repository.ErrTaskNotFound

// TaskService owns the change-recording mutators: each flip of a completion or
// importance flag refreshes the task's updated timestamp and appends exactly
// one history entry, all inside one transaction.
type TaskService struct {
	db      *pgxpool.Pool
	tasks   *repository.TaskRepository
	history *repository.HistoryRepository
	bus     *live.Bus
}

func NewTaskService(db *pgxpool.Pool, bus *live.Bus) *TaskService {
	return &TaskService{
		db:      db,
		tasks:   repository.NewTaskRepository(db),
		history: repository.NewHistoryRepository(db),
		bus:     bus,
	}
}

// Create inserts a new task. Creation writes no history entry (history
// records flips only) but still invalidates dependent queries.
func (s *TaskService) Create(ctx context.Context, t *domain.Task) error {
	if err := s.tasks.Create(ctx, t); err != nil {
		return err
	}
	s.bus.Publish(live.Change{TaskID: t.ID})
	return nil
}

// ToggleCompleted inverts the completion flag of one task. Not idempotent:
// every call flips and appends, two calls restore the flag but leave two
// history entries.
func (s *TaskService) ToggleCompleted(ctx context.Context, id int64) (*domain.Task, error) {
	return s.toggle(ctx, id, domain.KindCompletion)
}

// ToggleImportant inverts the importance flag of one task.
func (s *TaskService) ToggleImportant(ctx context.Context, id int64) (*domain.Task, error) {
	return s.toggle(ctx, id, domain.KindImportance)
}

func (s *TaskService) toggle(ctx context.Context, id int64, kind domain.ChangeKind) (*domain.Task, error) {
	task, _, err := s.flip(ctx, id, kind, nil)
	if err != nil {
		return nil, err
	}

	metrics.Mutations.WithLabelValues(string(kind)).Inc()
	metrics.HistoryAppends.Inc()
	s.bus.Publish(live.Change{TaskID: id, Kind: kind})
	return task, nil
}

// flip runs one flip-and-append unit. target nil means invert the current
// value; a non-nil target sets the value, skipping the write and the history
// append entirely when the task already matches (the bulk set contract).
// The skipped result reports that no-op case.
func (s *TaskService) flip(ctx context.Context, id int64, kind domain.ChangeKind, target *bool) (*domain.Task, bool, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	column := "completed"
	if kind == domain.KindImportance {
		column = "important"
	}

	var current *bool
	err = tx.QueryRow(ctx, `SELECT `+column+` FROM tasks WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, ErrTaskNotFound
		}
		return nil, false, err
	}

	cur := current != nil && *current
	newValue := !cur
	if target != nil {
		if cur == *target {
			return nil, true, nil
		}
		newValue = *target
	}

	now := time.Now().UTC()
	var row struct {
		ID        int64
		Title     string
		Desc      *string
		Completed bool
		Important *bool
		Duration  *int32
		CreatedAt *time.Time
		UpdatedAt *time.Time
		UserID    *int64
	}
	err = tx.QueryRow(ctx,
		`UPDATE tasks SET `+column+` = $1, updated_at = $2 WHERE id = $3
		 RETURNING id, title, description, completed, important, duration_minutes, created_at, updated_at, user_id`,
		newValue, now, id,
	).Scan(&row.ID, &row.Title, &row.Desc, &row.Completed, &row.Important, &row.Duration,
		&row.CreatedAt, &row.UpdatedAt, &row.UserID)
	if err != nil {
		return nil, false, err
	}

	entry := &domain.HistoryEntry{
		TaskID:    id,
		Kind:      kind,
		NewValue:  newValue,
		ChangedAt: now,
	}
	if err := s.history.AppendTx(ctx, tx, entry); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}

	task := &domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Completed: row.Completed,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Desc != nil {
		task.Description = *row.Desc
	}
	if row.Important != nil {
		task.Important = *row.Important
	}
	if row.Duration != nil {
		task.DurationMinutes = int(*row.Duration)
	}
	if row.UserID != nil {
		task.UserID = *row.UserID
	}
	return task, false, nil
}

// ToggleAll flips completion on each listed task, one transaction per task.
// Missing tasks are skipped; any other failure stops the batch, leaving the
// flips already committed in place. Returns the number of tasks flipped.
func (s *TaskService) ToggleAll(ctx context.Context, ids []int64) (int, error) {
	processed := 0
	for _, id := range ids {
		if _, err := s.ToggleCompleted(ctx, id); err != nil {
			if errors.Is(err, ErrTaskNotFound) {
				continue
			}
			return processed, err
		}
		processed++
	}
	return processed, nil
}

// SetAllCompleted forces completion to value on each listed task. Tasks
// already at the value are skipped without touching them or their history, so
// the bulk set never produces spurious entries. Returns the number of tasks
// actually changed.
func (s *TaskService) SetAllCompleted(ctx context.Context, ids []int64, value bool) (int, error) {
	processed := 0
	for _, id := range ids {
		_, skipped, err := s.flip(ctx, id, domain.KindCompletion, &value)
		if err != nil {
			if errors.Is(err, ErrTaskNotFound) {
				continue
			}
			return processed, err
		}
		if skipped {
			continue
		}

		metrics.Mutations.WithLabelValues(string(domain.KindCompletion)).Inc()
		metrics.HistoryAppends.Inc()
		s.bus.Publish(live.Change{TaskID: id, Kind: domain.KindCompletion})
		processed++
	}
	return processed, nil
}
