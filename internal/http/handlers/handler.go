package handlers

import (
	"ledger_service/internal/service"
	"ledger_service/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB        *pgxpool.Pool
	Users     *service.UsersService
	Ledger    *service.LedgerService
	Analytics *service.AnalyticsService
	Hub       *ws.Hub

	// DefaultWeeks is the analysis window count when the query omits it
	DefaultWeeks int
}

func NewHandler(db *pgxpool.Pool, hub *ws.Hub, defaultWeeks int) *Handler {
	return &Handler{
		DB:           db,
		Users:        service.NewUsersService(db),
		Ledger:       service.NewLedgerService(db),
		Analytics:    service.NewAnalyticsService(db),
		Hub:          hub,
		DefaultWeeks: defaultWeeks,
	}
}
