package reportshandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/micro-mikko/lonasystem/internal/domain/reports"
	"github.com/micro-mikko/lonasystem/internal/transport/http/api"
	"github.com/micro-mikko/lonasystem/internal/transport/http/middleware"
	"github.com/micro-mikko/lonasystem/internal/transport/http/shared"
)

type Reporter interface {
	MonthlyReport(ctx context.Context, year, month int) (reports.Monthly, error)
}

type Handler struct {
	Reports Reporter
}

func NewHandler(reporter Reporter) *Handler {
	return &Handler{Reports: reporter}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/monthly", h.handleMonthly)
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	if errYear != nil || errMonth != nil || !shared.ValidYear(year) || !shared.ValidMonth(month) {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "year must be 2020-2030 and month 1-12", middleware.GetRequestID(r.Context()))
		return
	}

	report, err := h.Reports.MonthlyReport(r.Context(), year, month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "monthly_report_failed", "failed to build monthly report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}
