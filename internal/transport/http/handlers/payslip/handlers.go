package paysliphandler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/micro-mikko/lonasystem/internal/domain/employee"
	"github.com/micro-mikko/lonasystem/internal/domain/payslip"
	"github.com/micro-mikko/lonasystem/internal/transport/http/api"
	"github.com/micro-mikko/lonasystem/internal/transport/http/middleware"
	"github.com/micro-mikko/lonasystem/internal/transport/http/shared"
)

type EmployeeGetter interface {
	Get(ctx context.Context, id int64) (employee.Employee, error)
}

type Handler struct {
	Employees EmployeeGetter
}

func NewHandler(employees EmployeeGetter) *Handler {
	return &Handler{Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees/{employeeID}/payslip", h.handlePayslip)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", middleware.GetRequestID(r.Context()))
		return
	}

	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	if errYear != nil || errMonth != nil || !shared.ValidYear(year) || !shared.ValidMonth(month) {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "year must be 2020-2030 and month 1-12", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Employees.Get(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}

	document, err := payslip.Render(payslip.Build(emp, year, month))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payslip.Filename(emp.Namn, year, month)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}
