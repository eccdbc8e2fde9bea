package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MaintenanceRepository backs the administrative surface: destructive and
// one-off data operations that never run in normal request handling.
type MaintenanceRepository struct {
	db *pgxpool.Pool
}

func NewMaintenanceRepository(db *pgxpool.Pool) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// TruncateAll wipes every record collection and resets id sequences.
func (r *MaintenanceRepository) TruncateAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `TRUNCATE task_history, tasks, users RESTART IDENTITY CASCADE`)
	return err
}
