package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTaskNotFound = errors.New("task not found")

const taskColumns = `id, title, description, completed, important, duration_minutes, created_at, updated_at, user_id`

// taskRow carries the nullable column shapes; toDomain applies the defaulting
// rules exactly once so the rest of the code works with concrete values.
type taskRow struct {
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

func (r *taskRow) dest() []any {
	return []any{&r.ID, &r.Title, &r.Desc, &r.Completed, &r.Important, &r.Duration, &r.CreatedAt, &r.UpdatedAt, &r.UserID}
}

func (r *taskRow) toDomain() domain.Task {
	t := domain.Task{
		ID:        r.ID,
		Title:     r.Title,
		Completed: r.Completed,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Desc != nil {
		t.Description = *r.Desc
	}
	if r.Important != nil {
		t.Important = *r.Important
	}
	if r.Duration != nil {
		t.DurationMinutes = int(*r.Duration)
	}
	if r.UserID != nil {
		t.UserID = *r.UserID
	}
	return t
}

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns a raw offset-based slice of tasks, newest id first. Legacy
// entry point kept for the old paged clients.
func (r *TaskRepository) List(ctx context.Context, page, pageSize int) ([]domain.Task, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY id DESC LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// ListPage returns cursor-based pages in ascending id order. nextCursor is 0
// when the page was not full.
func (r *TaskRepository) ListPage(ctx context.Context, cursor int64, limit int) ([]domain.Task, int64, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id > $1 ORDER BY id ASC LIMIT $2`,
		cursor, limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	var next int64
	if len(tasks) == limit {
		next = tasks[len(tasks)-1].ID
	}
	return tasks, next, nil
}

// likeEscaper neutralizes the LIKE pattern metacharacters so a search string
// always matches literally. Postgres treats backslash as the escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ListEnriched returns every task annotated with its history count, optionally
// restricted to a user set and to a case-insensitive substring of title or
// description. An empty search string and an empty user set mean no filter.
func (r *TaskRepository) ListEnriched(ctx context.Context, search string, userIDs []int64) ([]domain.EnrichedTask, error) {
	if userIDs == nil {
		userIDs = []int64{}
	}

	rows, err := r.db.Query(ctx,
		`SELECT t.id, t.title, t.description, t.completed, t.important, t.duration_minutes, t.created_at, t.updated_at, t.user_id,
			(SELECT COUNT(*) FROM task_history h WHERE h.task_id = t.id) AS history_count
		 FROM tasks t
		 WHERE ($1 = '' OR t.title ILIKE '%' || $1 || '%' OR t.description ILIKE '%' || $1 || '%')
		   AND (cardinality($2::bigint[]) = 0 OR t.user_id = ANY($2))
		 ORDER BY t.id ASC`,
		escapeLike(search), userIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.EnrichedTask
	for rows.Next() {
		var (
			row   taskRow
			count int
		)
		if err := rows.Scan(append(row.dest(), &count)...); err != nil {
			return nil, err
		}
		res = append(res, domain.EnrichedTask{Task: row.toDomain(), HistoryCount: count})
	}
	return res, rows.Err()
}

// Get returns one task by id.
func (r *TaskRepository) Get(ctx context.Context, id int64) (*domain.Task, error) {
	var row taskRow
	err := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	t := row.toDomain()
	return &t, nil
}

// Create inserts a task and fills in its id and creation timestamp.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	var desc, dur, uid any
	if t.Description != "" {
		desc = t.Description
	}
	if t.DurationMinutes > 0 {
		dur = t.DurationMinutes
	}
	if t.UserID != 0 {
		uid = t.UserID
	}

	now := time.Now().UTC()
	t.CreatedAt = &now
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, description, completed, important, duration_minutes, created_at, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		t.Title, desc, t.Completed, t.Important, dur, now, uid,
	).Scan(&t.ID)
}

func scanTasks(rows pgx.Rows) ([]domain.Task, error) {
	var res []domain.Task
	for rows.Next() {
		var row taskRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, err
		}
		res = append(res, row.toDomain())
	}
	return res, rows.Err()
}
