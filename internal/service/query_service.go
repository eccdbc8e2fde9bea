package service

import (
	"context"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskQueryService is the read side: the aggregation query and the history
// feeds. No method has side effects.
type TaskQueryService struct {
	tasks   *repository.TaskRepository
	history *repository.HistoryRepository
}

func NewTaskQueryService(db *pgxpool.Pool) *TaskQueryService {
	return &TaskQueryService{
		tasks:   repository.NewTaskRepository(db),
		history: repository.NewHistoryRepository(db),
	}
}

// ListEnriched returns every task with its history count, optionally filtered
// by a user set and a case-insensitive search over title and description. The
// search string is trimmed; whitespace-only means no filter.
func (s *TaskQueryService) ListEnriched(ctx context.Context, search string, userIDs []int64) ([]domain.EnrichedTask, error) {
	return s.tasks.ListEnriched(ctx, strings.TrimSpace(search), userIDs)
}

// List is the legacy offset-paged raw slice.
func (s *TaskQueryService) List(ctx context.Context, page, pageSize int) ([]domain.Task, error) {
	return s.tasks.List(ctx, page, pageSize)
}

// ListPage is the cursor-based alternate surface, ascending id order only.
func (s *TaskQueryService) ListPage(ctx context.Context, cursor int64, limit int) ([]domain.Task, int64, error) {
	return s.tasks.ListPage(ctx, cursor, limit)
}

// Get returns one task.
func (s *TaskQueryService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.Get(ctx, id)
}

// TaskHistory returns a task's full history, newest first. The task must
// exist; an unknown id is a not-found error rather than an empty feed.
func (s *TaskQueryService) TaskHistory(ctx context.Context, taskID int64, limit int) ([]domain.HistoryEntry, error) {
	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return nil, err
	}
	return s.history.ListByTask(ctx, taskID, limit)
}

// LatestChanges returns the most recent changes across all tasks.
func (s *TaskQueryService) LatestChanges(ctx context.Context, limit int) ([]domain.ChangeFeedEntry, error) {
	return s.history.Latest(ctx, limit)
}

// ChangesOverTime returns per-day change counts over the trailing window.
func (s *TaskQueryService) ChangesOverTime(ctx context.Context, days int) ([]domain.ChangeBucket, error) {
	return s.history.ChangesOverTime(ctx, days)
}
