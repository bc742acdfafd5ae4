package vacation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/micro-mikko/lonasystem/internal/db"
	"github.com/micro-mikko/lonasystem/internal/domain/employee"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := db.Migrate(ctx, pool, "../../../migrations"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func createEmployee(t *testing.T, pool *pgxpool.Pool) employee.Employee {
	t.Helper()
	store := employee.NewStore(pool)
	emp, err := store.Create(context.Background(), employee.CreateInput{
		Namn:         "Testperson",
		Personnummer: fmt.Sprintf("%012d", time.Now().UnixNano()%1e12),
		Lon:          decimal.NewFromInt(30000),
		Avdelning:    "Test",
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	t.Cleanup(func() { _ = store.Delete(context.Background(), emp.ID) })
	return emp
}

func TestWithdrawExhaustsAccrual(t *testing.T) {
	pool := testPool(t)
	ledger := NewLedger(pool)
	emp := createEmployee(t, pool)
	ctx := context.Background()
	datum := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	if _, err := ledger.Withdraw(ctx, emp.ID, 20, datum); err != nil {
		t.Fatalf("first withdrawal failed: %v", err)
	}
	// Reaching exactly the annual accrual is allowed.
	if _, err := ledger.Withdraw(ctx, emp.ID, 5, datum.AddDate(0, 1, 0)); err != nil {
		t.Fatalf("withdrawal to exactly %d days failed: %v", AnnualAccrualDays, err)
	}
	if _, err := ledger.Withdraw(ctx, emp.ID, 1, datum.AddDate(0, 2, 0)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance past the accrual, got %v", err)
	}

	balance, err := ledger.BalanceFor(ctx, emp.ID, 2026)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Taken != AnnualAccrualDays || balance.Balance != 0 {
		t.Fatalf("expected 25 taken and 0 remaining, got %+v", balance)
	}

	withdrawals, err := ledger.List(ctx, &emp.ID, nil, 0, 10)
	if err != nil {
		t.Fatalf("list withdrawals: %v", err)
	}
	if len(withdrawals) != 2 {
		t.Fatalf("rejected withdrawal must not insert, found %d rows", len(withdrawals))
	}
}

func TestWithdrawResetsPerYear(t *testing.T) {
	pool := testPool(t)
	ledger := NewLedger(pool)
	emp := createEmployee(t, pool)
	ctx := context.Background()

	if _, err := ledger.Withdraw(ctx, emp.ID, 25, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}
	if _, err := ledger.Withdraw(ctx, emp.ID, 10, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("next year's accrual should be fresh: %v", err)
	}
}

func TestWithdrawMissingEmployee(t *testing.T) {
	pool := testPool(t)
	ledger := NewLedger(pool)

	datum := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	if _, err := ledger.Withdraw(context.Background(), 999_999_999, 5, datum); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
