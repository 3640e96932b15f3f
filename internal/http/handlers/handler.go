package handlers

import (
	"timer_diary/internal/repository"
	"timer_diary/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB    *pgxpool.Pool
	Dates *repository.DateRepository
	Logs  *repository.LogRepository
	Hub   *ws.Hub // nil when the change feed is disabled (tests)
}

func NewHandler(db *pgxpool.Pool, hub *ws.Hub) *Handler {
	return &Handler{
		DB:    db,
		Dates: repository.NewDateRepository(db),
		Logs:  repository.NewLogRepository(db),
		Hub:   hub,
	}
}

func (h *Handler) notify(ev ws.Event) {
	if h.Hub != nil {
		h.Hub.Broadcast(ev)
	}
}
