package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/annapurna-pos/api/internal/database"
	"github.com/go-chi/chi/v5"
)

// ReportsStore defines the database methods needed by report handlers.
// Satisfied by *database.Queries.
type ReportsStore interface {
	GetDailyStats(ctx context.Context, day time.Time) (database.DailyStats, error)
}

// ReportsHandler serves the end-of-day summary.
type ReportsHandler struct {
	store ReportsStore
}

func NewReportsHandler(store ReportsStore) *ReportsHandler {
	return &ReportsHandler{store: store}
}

func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/daily", h.Daily)
}

type dailyStatsResponse struct {
	Date        string `json:"date"`
	OrdersCount int32  `json:"orders_count"`
	Revenue     string `json:"revenue"`
}

// Daily returns order count and revenue for one calendar date
// (?date=YYYY-MM-DD, default today).
func (h *ReportsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if s := r.URL.Query().Get("date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	stats, err := h.store.GetDailyStats(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, dailyStatsResponse{
		Date:        day.Format("2006-01-02"),
		OrdersCount: stats.OrdersCount,
		Revenue:     database.NumericToDecimal(stats.Revenue).StringFixed(2),
	})
}
