package repository

import (
	"context"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HistoryRepository struct {
	db *pgxpool.Pool
}

func NewHistoryRepository(db *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// AppendTx inserts one history entry inside the caller's transaction, so the
// append becomes visible together with the task flip it records.
func (r *HistoryRepository) AppendTx(ctx context.Context, tx pgx.Tx, e *domain.HistoryEntry) error {
	return tx.QueryRow(ctx,
		`INSERT INTO task_history (task_id, kind, new_value, changed_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		e.TaskID, string(e.Kind), e.NewValue, e.ChangedAt,
	).Scan(&e.ID)
}

// ListByTask returns the history for one task, newest first. A non-positive
// limit returns the full history; a NULL bound limit is LIMIT ALL in Postgres.
func (r *HistoryRepository) ListByTask(ctx context.Context, taskID int64, limit int) ([]domain.HistoryEntry, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, task_id, kind, new_value, changed_at
		 FROM task_history
		 WHERE task_id = $1
		 ORDER BY changed_at DESC, id DESC
		 LIMIT $2`,
		taskID, lim,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.HistoryEntry
	for rows.Next() {
		e, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// Latest returns the most recent changes across all tasks, joined with the
// task titles for the activity feed.
func (r *HistoryRepository) Latest(ctx context.Context, limit int) ([]domain.ChangeFeedEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT h.id, h.task_id, h.kind, h.new_value, h.changed_at, t.title
		 FROM task_history h
		 JOIN tasks t ON t.id = h.task_id
		 ORDER BY h.changed_at DESC, h.id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.ChangeFeedEntry
	for rows.Next() {
		var (
			e    domain.ChangeFeedEntry
			kind *string
		)
		if err := rows.Scan(&e.ID, &e.TaskID, &kind, &e.NewValue, &e.ChangedAt, &e.TaskTitle); err != nil {
			return nil, err
		}
		e.Kind = domain.KindOrDefault(kind)
		res = append(res, e)
	}
	return res, rows.Err()
}

// ChangesOverTime returns per-day change counts for the last `days` days.
func (r *HistoryRepository) ChangesOverTime(ctx context.Context, days int) ([]domain.ChangeBucket, error) {
	if days <= 0 {
		days = 30
	}

	rows, err := r.db.Query(ctx,
		`SELECT date_trunc('day', changed_at) AS day, COUNT(*)
		 FROM task_history
		 WHERE changed_at >= now() - make_interval(days => $1)
		 GROUP BY day
		 ORDER BY day ASC`,
		days,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.ChangeBucket
	for rows.Next() {
		var b domain.ChangeBucket
		if err := rows.Scan(&b.Day, &b.Count); err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

// Backfill writes one legacy completion entry for every task that has no
// history yet, stamped with the task's own timestamps. Returns the number of
// entries created.
func (r *HistoryRepository) Backfill(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO task_history (task_id, kind, new_value, changed_at)
		 SELECT t.id, 'completion', t.completed, COALESCE(t.updated_at, t.created_at, now())
		 FROM tasks t
		 WHERE NOT EXISTS (SELECT 1 FROM task_history h WHERE h.task_id = t.id)`,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanHistoryEntry(rows pgx.Rows) (domain.HistoryEntry, error) {
	var (
		e    domain.HistoryEntry
		kind *string
	)
	if err := rows.Scan(&e.ID, &e.TaskID, &kind, &e.NewValue, &e.ChangedAt); err != nil {
		return e, err
	}
	e.Kind = domain.KindOrDefault(kind)
	return e, nil
}
