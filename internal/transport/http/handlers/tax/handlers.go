package taxhandler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/micro-mikko/lonasystem/internal/domain/employee"
	"github.com/micro-mikko/lonasystem/internal/domain/tax"
	"github.com/micro-mikko/lonasystem/internal/transport/http/api"
	"github.com/micro-mikko/lonasystem/internal/transport/http/middleware"
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

type quoteResponse struct {
	Bruttolon     decimal.Decimal `json:"bruttolon"`
	Kommunalskatt decimal.Decimal `json:"kommunalskatt"`
	StatligSkatt  decimal.Decimal `json:"statligSkatt"`
	TotalSkatt    decimal.Decimal `json:"totalSkatt"`
	Nettolon      decimal.Decimal `json:"nettolon"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/tax/calculate", h.handleCalculate)
}

// handleCalculate quotes the monthly withholding either for an existing
// employee's current pay or for a raw monthly salary.
func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	rawEmployeeID := r.URL.Query().Get("employeeId")
	rawSalary := r.URL.Query().Get("monthlySalary")

	var gross decimal.Decimal
	switch {
	case rawEmployeeID != "":
		id, err := strconv.ParseInt(rawEmployeeID, 10, 64)
		if err != nil || id <= 0 {
			api.Fail(w, http.StatusBadRequest, "invalid_id", "employeeId must be a positive integer", middleware.GetRequestID(r.Context()))
			return
		}
		emp, err := h.Employees.Get(r.Context(), id)
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "tax_quote_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
			return
		}
		gross = emp.Lon
	case rawSalary != "":
		parsed, err := decimal.NewFromString(rawSalary)
		if err != nil || parsed.IsNegative() {
			api.Fail(w, http.StatusBadRequest, "invalid_salary", "monthlySalary must be a non-negative number", middleware.GetRequestID(r.Context()))
			return
		}
		gross = parsed
	default:
		api.Fail(w, http.StatusBadRequest, "missing_input", "employeeId or monthlySalary is required", middleware.GetRequestID(r.Context()))
		return
	}

	breakdown := tax.CalculateMonthly(gross)
	api.Success(w, quoteResponse{
		Bruttolon:     gross,
		Kommunalskatt: breakdown.Local,
		StatligSkatt:  breakdown.National,
		TotalSkatt:    breakdown.Total,
		Nettolon:      tax.Net(gross, breakdown),
	}, middleware.GetRequestID(r.Context()))
}
