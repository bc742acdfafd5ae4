package vacation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/micro-mikko/lonasystem/internal/db"
)

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrInsufficientBalance = errors.New("insufficient vacation balance")
)

type Ledger struct {
	Pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{Pool: pool}
}

// Withdraw validates a day withdrawal against the accrual year of datum
// and records it, all in one transaction. The employee row is locked so
// two concurrent withdrawals cannot both pass the balance check.
func (l *Ledger) Withdraw(ctx context.Context, employeeID int64, antalDagar int, datum time.Time) (Withdrawal, error) {
	var withdrawal Withdrawal
	err := db.WithTransaction(ctx, l.Pool, func(tx pgx.Tx) error {
		var lockedID int64
		err := tx.QueryRow(ctx, "SELECT id FROM employees WHERE id = $1 FOR UPDATE", employeeID).Scan(&lockedID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrEmployeeNotFound
		}
		if err != nil {
			return err
		}

		taken, err := takenInYear(ctx, tx, employeeID, datum.Year())
		if err != nil {
			return err
		}
		if !Fits(taken, antalDagar) {
			return ErrInsufficientBalance
		}

		withdrawal = Withdrawal{EmployeeID: employeeID, AntalDagar: antalDagar, Datum: datum}
		return tx.QueryRow(ctx, `
      INSERT INTO vacation_withdrawals (employee_id, antal_dagar, datum)
      VALUES ($1,$2,$3)
      RETURNING id, created_at
    `, employeeID, antalDagar, datum).Scan(&withdrawal.ID, &withdrawal.CreatedAt)
	})
	if err != nil {
		return Withdrawal{}, err
	}
	return withdrawal, nil
}

// BalanceFor computes the remaining accrual for one employee and year.
func (l *Ledger) BalanceFor(ctx context.Context, employeeID int64, year int) (Balance, error) {
	taken, err := takenInYear(ctx, l.Pool, employeeID, year)
	if err != nil {
		return Balance{}, err
	}
	return Balance{
		EmployeeID: employeeID,
		Year:       year,
		Accrued:    AnnualAccrualDays,
		Taken:      taken,
		Balance:    Remaining(taken),
	}, nil
}

// AllBalances returns the accrual state for every employee; employees
// without withdrawals in the year report zero taken days.
func (l *Ledger) AllBalances(ctx context.Context, year int) ([]Balance, error) {
	rows, err := l.Pool.Query(ctx, `
    SELECT e.id, COALESCE(SUM(w.antal_dagar), 0)
    FROM employees e
    LEFT JOIN vacation_withdrawals w
      ON w.employee_id = e.id AND date_part('year', w.datum)::int = $1
    GROUP BY e.id
    ORDER BY e.id
  `, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []Balance
	for rows.Next() {
		var employeeID int64
		var taken int
		if err := rows.Scan(&employeeID, &taken); err != nil {
			return nil, err
		}
		balances = append(balances, Balance{
			EmployeeID: employeeID,
			Year:       year,
			Accrued:    AnnualAccrualDays,
			Taken:      taken,
			Balance:    Remaining(taken),
		})
	}
	return balances, rows.Err()
}

// List returns withdrawals newest date first, optionally filtered by
// employee and accrual year.
func (l *Ledger) List(ctx context.Context, employeeID *int64, year *int, skip, limit int) ([]Withdrawal, error) {
	query := `
    SELECT id, employee_id, antal_dagar, datum, created_at
    FROM vacation_withdrawals
  `
	args := []any{}
	conditions := ""
	addCondition := func(condition string, value any) {
		args = append(args, value)
		if conditions == "" {
			conditions = " WHERE "
		} else {
			conditions += " AND "
		}
		conditions += fmt.Sprintf(condition, len(args))
	}
	if employeeID != nil {
		addCondition("employee_id = $%d", *employeeID)
	}
	if year != nil {
		addCondition("date_part('year', datum)::int = $%d", *year)
	}
	query += conditions
	query += fmt.Sprintf(" ORDER BY datum DESC, id DESC OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, skip, limit)

	rows, err := l.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []Withdrawal
	for rows.Next() {
		var w Withdrawal
		if err := rows.Scan(&w.ID, &w.EmployeeID, &w.AntalDagar, &w.Datum, &w.CreatedAt); err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}

func takenInYear(ctx context.Context, q db.Querier, employeeID int64, year int) (int, error) {
	var taken int
	err := q.QueryRow(ctx, `
    SELECT COALESCE(SUM(antal_dagar), 0)
    FROM vacation_withdrawals
    WHERE employee_id = $1 AND date_part('year', datum)::int = $2
  `, employeeID, year).Scan(&taken)
	if err != nil {
		return 0, err
	}
	return taken, nil
}
