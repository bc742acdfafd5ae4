package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/micro-mikko/lonasystem/internal/db"
)

type Monthly struct {
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	TotalPayrollCost  decimal.Decimal `json:"totalPayrollCost"`
	Headcount         int             `json:"headcount"`
	VacationDaysTaken int             `json:"vacationDaysTaken"`
}

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

// MonthlyReport sums every employee's current pay, the headcount, and the
// vacation days taken in the given month. Cost reflects current pay, not
// pay at the time: a raise applied today changes the reported cost for
// past months too.
func (s *Store) MonthlyReport(ctx context.Context, year, month int) (Monthly, error) {
	report := Monthly{Year: year, Month: month}

	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1), COALESCE(SUM(lon), 0)
    FROM employees
  `).Scan(&report.Headcount, &report.TotalPayrollCost)
	if err != nil {
		return Monthly{}, err
	}

	err = s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(antal_dagar), 0)
    FROM vacation_withdrawals
    WHERE datum >= make_date($1, $2, 1)
      AND datum < make_date($1, $2, 1) + INTERVAL '1 month'
  `, year, month).Scan(&report.VacationDaysTaken)
	if err != nil {
		return Monthly{}, err
	}

	return report, nil
}
