package salaryhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/micro-mikko/lonasystem/internal/domain/salary"
	"github.com/micro-mikko/lonasystem/internal/transport/http/api"
	"github.com/micro-mikko/lonasystem/internal/transport/http/middleware"
	"github.com/micro-mikko/lonasystem/internal/transport/http/shared"
)

type Ledger interface {
	Apply(ctx context.Context, employeeID int64, nyLon decimal.Decimal, orsak *string) (salary.Raise, error)
	List(ctx context.Context, employeeID *int64, skip, limit int) ([]salary.Raise, error)
}

type Handler struct {
	Ledger Ledger
}

func NewHandler(ledger Ledger) *Handler {
	return &Handler{Ledger: ledger}
}

type createPayload struct {
	EmployeeID int64           `json:"employeeId"`
	NyLon      decimal.Decimal `json:"nyLon"`
	Orsak      *string         `json:"orsak"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/salary-raises", h.handleList)
	r.Post("/salary-raises", h.handleCreate)
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

	raises, err := h.Ledger.List(r.Context(), employeeID, page.Skip, page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_raises_list_failed", "failed to list salary raises", middleware.GetRequestID(r.Context()))
		return
	}
	if raises == nil {
		raises = []salary.Raise{}
	}
	api.Success(w, raises, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.EmployeeID <= 0 {
		v.Add("employeeId", "must be a positive integer")
	}
	if payload.NyLon.IsNegative() {
		v.Add("nyLon", "must not be negative")
	}
	if payload.Orsak != nil && len(*payload.Orsak) > 255 {
		v.Add("orsak", "must be at most 255 characters")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	raise, err := h.Ledger.Apply(r.Context(), payload.EmployeeID, payload.NyLon, payload.Orsak)
	// Missing employee and a non-increase share one response on purpose.
	if errors.Is(err, salary.ErrEmployeeNotFound) || errors.Is(err, salary.ErrNotAnIncrease) {
		api.Fail(w, http.StatusBadRequest, "invalid_raise", "employee not found or new salary must be greater than current salary", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_raise_create_failed", "failed to record salary raise", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, raise, middleware.GetRequestID(r.Context()))
}
