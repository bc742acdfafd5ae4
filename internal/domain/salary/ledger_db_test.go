package salary

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

func createEmployee(t *testing.T, pool *pgxpool.Pool, lon decimal.Decimal) employee.Employee {
	t.Helper()
	store := employee.NewStore(pool)
	emp, err := store.Create(context.Background(), employee.CreateInput{
		Namn:         "Testperson",
		Personnummer: fmt.Sprintf("%012d", time.Now().UnixNano()%1e12),
		Lon:          lon,
		Avdelning:    "Test",
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	t.Cleanup(func() { _ = store.Delete(context.Background(), emp.ID) })
	return emp
}

func TestApplyRejectsNonIncrease(t *testing.T) {
	pool := testPool(t)
	ledger := NewLedger(pool)
	emp := createEmployee(t, pool, decimal.NewFromInt(30000))
	ctx := context.Background()

	for _, ny := range []decimal.Decimal{decimal.NewFromInt(30000), decimal.NewFromInt(25000)} {
		if _, err := ledger.Apply(ctx, emp.ID, ny, nil); !errors.Is(err, ErrNotAnIncrease) {
			t.Fatalf("nyLon %s: expected ErrNotAnIncrease, got %v", ny, err)
		}
	}

	raises, err := ledger.List(ctx, &emp.ID, 0, 10)
	if err != nil {
		t.Fatalf("list raises: %v", err)
	}
	if len(raises) != 0 {
		t.Fatalf("rejected raise must not insert, found %d rows", len(raises))
	}

	current, err := employee.NewStore(pool).Get(ctx, emp.ID)
	if err != nil {
		t.Fatalf("get employee: %v", err)
	}
	if !current.Lon.Equal(emp.Lon) {
		t.Fatalf("pay changed after rejected raise: %s", current.Lon)
	}
}

func TestApplyRecordsRaiseAndUpdatesPay(t *testing.T) {
	pool := testPool(t)
	ledger := NewLedger(pool)
	emp := createEmployee(t, pool, decimal.NewFromInt(30000))
	ctx := context.Background()

	orsak := "promotion"
	raise, err := ledger.Apply(ctx, emp.ID, decimal.NewFromInt(33000), &orsak)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !raise.GammalLon.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("unexpected gammal_lon %s", raise.GammalLon)
	}
	if !raise.ProcentOkning.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected 10.00%%, got %s", raise.ProcentOkning)
	}

	current, err := employee.NewStore(pool).Get(ctx, emp.ID)
	if err != nil {
		t.Fatalf("get employee: %v", err)
	}
	if !current.Lon.Equal(decimal.NewFromInt(33000)) {
		t.Fatalf("expected pay 33000 after raise, got %s", current.Lon)
	}

	raises, err := ledger.List(ctx, &emp.ID, 0, 10)
	if err != nil {
		t.Fatalf("list raises: %v", err)
	}
	if len(raises) != 1 {
		t.Fatalf("expected one audit row, got %d", len(raises))
	}
}

func TestApplyFromZeroPay(t *testing.T) {
	pool := testPool(t)
	ledger := NewLedger(pool)
	emp := createEmployee(t, pool, decimal.Zero)
	ctx := context.Background()

	raise, err := ledger.Apply(ctx, emp.ID, decimal.NewFromInt(5000), nil)
	if err != nil {
		t.Fatalf("apply from zero pay failed: %v", err)
	}
	if !raise.ProcentOkning.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected 100.00%% for a zero base, got %s", raise.ProcentOkning)
	}
}

func TestApplyMissingEmployee(t *testing.T) {
	pool := testPool(t)
	ledger := NewLedger(pool)

	if _, err := ledger.Apply(context.Background(), 999_999_999, decimal.NewFromInt(5000), nil); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
