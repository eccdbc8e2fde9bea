package handlers

import (
	"taskboard/internal/live"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB      *pgxpool.Pool
	Tasks   *service.TaskService
	Queries *service.TaskQueryService
	Users   *repository.UserRepository
	History *repository.HistoryRepository
	Maint   *repository.MaintenanceRepository
}

func NewHandler(db *pgxpool.Pool, bus *live.Bus) *Handler {
	return &Handler{
		DB:      db,
		Tasks:   service.NewTaskService(db, bus),
		Queries: service.NewTaskQueryService(db),
		Users:   repository.NewUserRepository(db),
		History: repository.NewHistoryRepository(db),
		Maint:   repository.NewMaintenanceRepository(db),
	}
}
