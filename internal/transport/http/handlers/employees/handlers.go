package employeeshandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/micro-mikko/lonasystem/internal/domain/employee"
	"github.com/micro-mikko/lonasystem/internal/transport/http/api"
	"github.com/micro-mikko/lonasystem/internal/transport/http/middleware"
	"github.com/micro-mikko/lonasystem/internal/transport/http/shared"
)

type Store interface {
	List(ctx context.Context, skip, limit int) ([]employee.Employee, error)
	Get(ctx context.Context, id int64) (employee.Employee, error)
	Create(ctx context.Context, input employee.CreateInput) (employee.Employee, error)
	Update(ctx context.Context, id int64, input employee.UpdateInput) (employee.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

type createPayload struct {
	Namn         string          `json:"namn"`
	Personnummer string          `json:"personnummer"`
	Lon          decimal.Decimal `json:"lon"`
	Avdelning    string          `json:"avdelning"`
}

type updatePayload struct {
	Namn         *string          `json:"namn"`
	Personnummer *string          `json:"personnummer"`
	Lon          *decimal.Decimal `json:"lon"`
	Avdelning    *string          `json:"avdelning"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.handleList)
	r.Post("/employees", h.handleCreate)
	r.Get("/employees/{employeeID}", h.handleGet)
	r.Put("/employees/{employeeID}", h.handleUpdate)
	r.Delete("/employees/{employeeID}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	employees, err := h.Store.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}
	emp, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Length("namn", payload.Namn, 1, 100)
	v.Length("personnummer", payload.Personnummer, 10, 12)
	v.Length("avdelning", payload.Avdelning, 1, 100)
	if payload.Lon.IsNegative() {
		v.Add("lon", "must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Store.Create(r.Context(), employee.CreateInput{
		Namn:         payload.Namn,
		Personnummer: payload.Personnummer,
		Lon:          payload.Lon,
		Avdelning:    payload.Avdelning,
	})
	if errors.Is(err, employee.ErrDuplicatePersonnummer) {
		api.Fail(w, http.StatusConflict, "duplicate_personnummer", "an employee with this personnummer already exists", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}
	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.Namn != nil {
		v.Length("namn", *payload.Namn, 1, 100)
	}
	if payload.Personnummer != nil {
		v.Length("personnummer", *payload.Personnummer, 10, 12)
	}
	if payload.Avdelning != nil {
		v.Length("avdelning", *payload.Avdelning, 1, 100)
	}
	if payload.Lon != nil && payload.Lon.IsNegative() {
		v.Add("lon", "must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Store.Update(r.Context(), id, employee.UpdateInput{
		Namn:         payload.Namn,
		Personnummer: payload.Personnummer,
		Lon:          payload.Lon,
		Avdelning:    payload.Avdelning,
	})
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, employee.ErrDuplicatePersonnummer) {
		api.Fail(w, http.StatusConflict, "duplicate_personnummer", "another employee already has this personnummer", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}
	err := h.Store.Delete(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"message": "employee deleted"}, middleware.GetRequestID(r.Context()))
}

func employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}
