package employeeshandler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/micro-mikko/lonasystem/internal/domain/employee"
	"github.com/micro-mikko/lonasystem/internal/transport/http/api"
)

type fakeStore struct {
	employees map[int64]employee.Employee
	createErr error
	nextID    int64
	lastSkip  int
	lastLimit int
}

func newFakeStore() *fakeStore {
	return &fakeStore{employees: map[int64]employee.Employee{}, nextID: 1}
}

func (f *fakeStore) List(_ context.Context, skip, limit int) ([]employee.Employee, error) {
	f.lastSkip, f.lastLimit = skip, limit
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id int64) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return emp, nil
}

func (f *fakeStore) Create(_ context.Context, input employee.CreateInput) (employee.Employee, error) {
	if f.createErr != nil {
		return employee.Employee{}, f.createErr
	}
	emp := employee.Employee{
		ID:           f.nextID,
		Namn:         input.Namn,
		Personnummer: input.Personnummer,
		Lon:          input.Lon,
		Avdelning:    input.Avdelning,
	}
	f.employees[emp.ID] = emp
	f.nextID++
	return emp, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, input employee.UpdateInput) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	if input.Namn != nil {
		emp.Namn = *input.Namn
	}
	if input.Lon != nil {
		emp.Lon = *input.Lon
	}
	f.employees[id] = emp
	return emp, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.employees[id]; !ok {
		return employee.ErrNotFound
	}
	delete(f.employees, id)
	return nil
}

func newRouter(store Store) *chi.Mux {
	r := chi.NewRouter()
	NewHandler(store).RegisterRoutes(r)
	return r
}

func decodeEnvelope(t *testing.T, body string) api.Envelope {
	t.Helper()
	var envelope api.Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	return envelope
}

func TestCreateEmployee(t *testing.T) {
	store := newFakeStore()
	router := newRouter(store)

	req := httptest.NewRequest("POST", "/employees", strings.NewReader(`{"namn":"Anna Svensson","personnummer":"198505121234","lon":45000,"avdelning":"Ekonomi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, 201, rec.Code)
	require.Len(t, store.employees, 1)
	require.True(t, store.employees[1].Lon.Equal(decimal.NewFromInt(45000)))
}

func TestCreateEmployeeValidation(t *testing.T) {
	store := newFakeStore()
	router := newRouter(store)

	for _, body := range []string{
		`{"namn":"","personnummer":"198505121234","lon":45000,"avdelning":"Ekonomi"}`,
		`{"namn":"Anna","personnummer":"123","lon":45000,"avdelning":"Ekonomi"}`,
		`{"namn":"Anna","personnummer":"198505121234","lon":-1,"avdelning":"Ekonomi"}`,
		`{"namn":"Anna","personnummer":"198505121234","lon":45000,"avdelning":""}`,
	} {
		req := httptest.NewRequest("POST", "/employees", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, 400, rec.Code, body)
		envelope := decodeEnvelope(t, rec.Body.String())
		require.NotNil(t, envelope.Error, body)
		require.Equal(t, "validation_error", envelope.Error.Code, body)
	}
	require.Empty(t, store.employees)
}

func TestCreateEmployeeDuplicate(t *testing.T) {
	store := newFakeStore()
	store.createErr = employee.ErrDuplicatePersonnummer
	router := newRouter(store)

	req := httptest.NewRequest("POST", "/employees", strings.NewReader(`{"namn":"Anna","personnummer":"198505121234","lon":45000,"avdelning":"Ekonomi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, 409, rec.Code)
	envelope := decodeEnvelope(t, rec.Body.String())
	require.Equal(t, "duplicate_personnummer", envelope.Error.Code)
}

func TestGetEmployeeNotFound(t *testing.T) {
	router := newRouter(newFakeStore())

	req := httptest.NewRequest("GET", "/employees/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, 404, rec.Code)
	envelope := decodeEnvelope(t, rec.Body.String())
	require.Equal(t, "employee_not_found", envelope.Error.Code)
}

func TestGetEmployeeInvalidID(t *testing.T) {
	router := newRouter(newFakeStore())

	req := httptest.NewRequest("GET", "/employees/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, 400, rec.Code)
	envelope := decodeEnvelope(t, rec.Body.String())
	require.Equal(t, "invalid_id", envelope.Error.Code)
}

func TestListEmployeesPagination(t *testing.T) {
	store := newFakeStore()
	router := newRouter(store)

	req := httptest.NewRequest("GET", "/employees?skip=10&limit=20", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	require.Equal(t, 10, store.lastSkip)
	require.Equal(t, 20, store.lastLimit)
}

func TestListEmployeesEmptyIsArray(t *testing.T) {
	router := newRouter(newFakeStore())

	req := httptest.NewRequest("GET", "/employees", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	require.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestUpdateEmployeePartial(t *testing.T) {
	store := newFakeStore()
	store.employees[1] = employee.Employee{ID: 1, Namn: "Anna", Personnummer: "198505121234", Lon: decimal.NewFromInt(45000), Avdelning: "Ekonomi"}
	router := newRouter(store)

	req := httptest.NewRequest("PUT", "/employees/1", strings.NewReader(`{"lon":48000}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	require.True(t, store.employees[1].Lon.Equal(decimal.NewFromInt(48000)))
	require.Equal(t, "Anna", store.employees[1].Namn)
}

func TestDeleteEmployee(t *testing.T) {
	store := newFakeStore()
	store.employees[1] = employee.Employee{ID: 1, Namn: "Anna"}
	router := newRouter(store)

	req := httptest.NewRequest("DELETE", "/employees/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	require.Empty(t, store.employees)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/employees/1", nil))
	require.Equal(t, 404, rec.Code)
}
