package salary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/micro-mikko/lonasystem/internal/db"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNotAnIncrease    = errors.New("new salary must be greater than current salary")
)

type Ledger struct {
	Pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{Pool: pool}
}

// PercentIncrease returns (ny - gammal) / gammal * 100 rounded to two
// decimals, half away from zero. A zero base has no meaningful ratio;
// any raise from zero pay is reported as a 100.00 percent increase.
func PercentIncrease(gammal, ny decimal.Decimal) decimal.Decimal {
	if gammal.IsZero() {
		return decimal.NewFromInt(100)
	}
	return ny.Sub(gammal).Div(gammal).Mul(decimal.NewFromInt(100)).Round(2)
}

// Apply validates and records a raise in one transaction. The employee row
// is locked so the read pay, the audit insert and the pay update cannot
// interleave with a concurrent raise.
func (l *Ledger) Apply(ctx context.Context, employeeID int64, nyLon decimal.Decimal, orsak *string) (Raise, error) {
	var raise Raise
	err := db.WithTransaction(ctx, l.Pool, func(tx pgx.Tx) error {
		var gammalLon decimal.Decimal
		err := tx.QueryRow(ctx, "SELECT lon FROM employees WHERE id = $1 FOR UPDATE", employeeID).Scan(&gammalLon)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrEmployeeNotFound
		}
		if err != nil {
			return err
		}

		if nyLon.Cmp(gammalLon) <= 0 {
			return ErrNotAnIncrease
		}

		raise = Raise{
			EmployeeID:    employeeID,
			GammalLon:     gammalLon,
			NyLon:         nyLon,
			ProcentOkning: PercentIncrease(gammalLon, nyLon),
			Orsak:         orsak,
		}
		if err := tx.QueryRow(ctx, `
      INSERT INTO salary_raises (employee_id, gammal_lon, ny_lon, procent_okning, orsak)
      VALUES ($1,$2,$3,$4,$5)
      RETURNING id, created_at
    `, raise.EmployeeID, raise.GammalLon, raise.NyLon, raise.ProcentOkning, raise.Orsak).Scan(&raise.ID, &raise.CreatedAt); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, "UPDATE employees SET lon = $1, updated_at = now() WHERE id = $2", nyLon, employeeID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return Raise{}, err
	}
	return raise, nil
}

// List returns raises newest first, optionally filtered to one employee.
func (l *Ledger) List(ctx context.Context, employeeID *int64, skip, limit int) ([]Raise, error) {
	query := `
    SELECT id, employee_id, gammal_lon, ny_lon, procent_okning, orsak, created_at
    FROM salary_raises
  `
	args := []any{}
	if employeeID != nil {
		query += " WHERE employee_id = $1"
		args = append(args, *employeeID)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, skip, limit)

	rows, err := l.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var raises []Raise
	for rows.Next() {
		var r Raise
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.GammalLon, &r.NyLon, &r.ProcentOkning, &r.Orsak, &r.CreatedAt); err != nil {
			return nil, err
		}
		raises = append(raises, r)
	}
	return raises, rows.Err()
}
