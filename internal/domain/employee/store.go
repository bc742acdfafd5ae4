package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/micro-mikko/lonasystem/internal/db"
)

var (
	ErrNotFound              = errors.New("employee not found")
	ErrDuplicatePersonnummer = errors.New("personnummer already in use")
)

const uniqueViolation = "23505"

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const employeeColumns = "id, namn, personnummer, lon, avdelning, created_at, updated_at"

func (s *Store) List(ctx context.Context, skip, limit int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    ORDER BY id
    OFFSET $1 LIMIT $2
  `, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Namn, &e.Personnummer, &e.Lon, &e.Avdelning, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id).Scan(&e.ID, &e.Namn, &e.Personnummer, &e.Lon, &e.Avdelning, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, input CreateInput) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (namn, personnummer, lon, avdelning)
    VALUES ($1,$2,$3,$4)
    RETURNING `+employeeColumns+`
  `, input.Namn, input.Personnummer, input.Lon, input.Avdelning).Scan(
		&e.ID, &e.Namn, &e.Personnummer, &e.Lon, &e.Avdelning, &e.CreatedAt, &e.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return Employee{}, ErrDuplicatePersonnummer
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) Update(ctx context.Context, id int64, input UpdateInput) (Employee, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if input.Namn != nil {
		add("namn", *input.Namn)
	}
	if input.Personnummer != nil {
		add("personnummer", *input.Personnummer)
	}
	if input.Lon != nil {
		add("lon", *input.Lon)
	}
	if input.Avdelning != nil {
		add("avdelning", *input.Avdelning)
	}
	if len(sets) == 0 {
		return s.Get(ctx, id)
	}

	query := "UPDATE employees SET "
	for i, set := range sets {
		if i > 0 {
			query += ", "
		}
		query += set
	}
	args = append(args, id)
	query += fmt.Sprintf(", updated_at = now() WHERE id = $%d RETURNING %s", len(args), employeeColumns)

	var e Employee
	err := s.DB.QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.Namn, &e.Personnummer, &e.Lon, &e.Avdelning, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if isUniqueViolation(err) {
		return Employee{}, ErrDuplicatePersonnummer
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
