package vacationhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/micro-mikko/lonasystem/internal/domain/vacation"
	"github.com/micro-mikko/lonasystem/internal/transport/http/api"
	"github.com/micro-mikko/lonasystem/internal/transport/http/middleware"
	"github.com/micro-mikko/lonasystem/internal/transport/http/shared"
)

type Ledger interface {
	Withdraw(ctx context.Context, employeeID int64, antalDagar int, datum time.Time) (vacation.Withdrawal, error)
	BalanceFor(ctx context.Context, employeeID int64, year int) (vacation.Balance, error)
	AllBalances(ctx context.Context, year int) ([]vacation.Balance, error)
	List(ctx context.Context, employeeID *int64, year *int, skip, limit int) ([]vacation.Withdrawal, error)
}

type Handler struct {
	Ledger Ledger
}

func NewHandler(ledger Ledger) *Handler {
	return &Handler{Ledger: ledger}
}

type withdrawPayload struct {
	EmployeeID int64  `json:"employeeId"`
	AntalDagar int    `json:"antalDagar"`
	Datum      string `json:"datum"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/vacation/balances", h.handleBalances)
	r.Get("/vacation/withdrawals", h.handleList)
	r.Post("/vacation/withdrawals", h.handleCreate)
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_year", "year must be an integer", middleware.GetRequestID(r.Context()))
			return
		}
		year = parsed
	}

	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			api.Fail(w, http.StatusBadRequest, "invalid_id", "employeeId must be a positive integer", middleware.GetRequestID(r.Context()))
			return
		}
		balance, err := h.Ledger.BalanceFor(r.Context(), id, year)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "vacation_balances_failed", "failed to load vacation balance", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, balance, middleware.GetRequestID(r.Context()))
		return
	}

	balances, err := h.Ledger.AllBalances(r.Context(), year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "vacation_balances_failed", "failed to list vacation balances", middleware.GetRequestID(r.Context()))
		return
	}
	if balances == nil {
		balances = []vacation.Balance{}
	}
	api.Success(w, balances, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)

	var employeeID *int64
	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			api.Fail(w, http.StatusBadRequest, "invalid_id", "employeeId must be a positive integer", middleware.GetRequestID(r.Context()))
			return
		}
		employeeID = &parsed
	}
	var year *int
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_year", "year must be an integer", middleware.GetRequestID(r.Context()))
			return
		}
		year = &parsed
	}

	withdrawals, err := h.Ledger.List(r.Context(), employeeID, year, page.Skip, page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "vacation_withdrawals_failed", "failed to list vacation withdrawals", middleware.GetRequestID(r.Context()))
		return
	}
	if withdrawals == nil {
		withdrawals = []vacation.Withdrawal{}
	}
	api.Success(w, withdrawals, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload withdrawPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.EmployeeID <= 0 {
		v.Add("employeeId", "must be a positive integer")
	}
	v.IntRange("antalDagar", payload.AntalDagar, vacation.MinWithdrawalDays, vacation.MaxWithdrawalDays)
	datum, err := shared.ParseDate(payload.Datum)
	if err != nil {
		v.Add("datum", "must be a valid date in YYYY-MM-DD format")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	withdrawal, err := h.Ledger.Withdraw(r.Context(), payload.EmployeeID, payload.AntalDagar, datum)
	if errors.Is(err, vacation.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusBadRequest, "invalid_employee", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, vacation.ErrInsufficientBalance) {
		api.Fail(w, http.StatusBadRequest, "insufficient_balance", "requested days exceed the remaining vacation balance", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "vacation_withdrawal_failed", "failed to record vacation withdrawal", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, withdrawal, middleware.GetRequestID(r.Context()))
}
