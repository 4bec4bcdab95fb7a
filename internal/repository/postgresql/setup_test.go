package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
	testDBErr  error
)

// requireTestDB returns the shared test database connection, skipping the
// test when TEST_DATABASE_URL is not set. These tests exercise the real SQL
// (conflict targets, partial unique index, update guards) and cannot run
// without a Postgres instance.
func requireTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database integration tests")
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, testDBErr, "failed to connect to test database")
	return testDB
}

func truncateAllTables(t *testing.T, ctx context.Context) {
	t.Helper()

	tables := []string{
		"payslips",
		"attendances",
		"shifts",
		"employees",
		"sites",
		"users",
		"companies",
	}
	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createTestCompany(t *testing.T, ctx context.Context) string {
	t.Helper()

	var companyID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO companies (id, name, timezone)
		VALUES ($1, 'Test Company', 'Europe/Rome')
		RETURNING id
	`, uuid.NewString()).Scan(&companyID)
	require.NoError(t, err)
	return companyID
}

func createTestUser(t *testing.T, ctx context.Context, companyID string) string {
	t.Helper()

	var userID string
	email := fmt.Sprintf("admin-%s@example.com", uuid.NewString())
	err := testDB.QueryRow(ctx, `
		INSERT INTO users (id, company_id, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, 'not-a-real-hash', 'Test Admin', 'admin')
		RETURNING id
	`, uuid.NewString(), companyID, email).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func createTestEmployee(t *testing.T, ctx context.Context, companyID string) string {
	t.Helper()

	var employeeID string
	email := fmt.Sprintf("employee-%s@example.com", uuid.NewString())
	err := testDB.QueryRow(ctx, `
		INSERT INTO employees (id, company_id, full_name, email, weekly_hours, hourly_rate, hired_at)
		VALUES ($1, $2, 'Mario Rossi', $3, 40, '20.00', NOW())
		RETURNING id
	`, uuid.NewString(), companyID, email).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func createTestShift(t *testing.T, ctx context.Context, companyID, employeeID string, date time.Time) string {
	t.Helper()

	var shiftID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO shifts (id, company_id, employee_id, date, start_time, end_time, type)
		VALUES ($1, $2, $3, $4, '09:00', '17:00', 'regular')
		RETURNING id
	`, uuid.NewString(), companyID, employeeID, date).Scan(&shiftID)
	require.NoError(t, err)
	return shiftID
}
