package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/payslip"
	"github.com/gestionale-hr/gestionale-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftPayslip(companyID, employeeID string) payslip.Payslip {
	return payslip.Payslip{
		CompanyID:          companyID,
		EmployeeID:         employeeID,
		PeriodMonth:        3,
		PeriodYear:         2025,
		TotalWorkedHours:   170,
		TotalOvertimeHours: 10,
		DaysWorked:         21,
		DaysAbsent:         1,
		BaseAmount:         decimal.RequireFromString("3200.00"),
		OvertimeAmount:     decimal.RequireFromString("250.00"),
		GrossAmount:        decimal.RequireFromString("3450.00"),
		Status:             payslip.StatusDraft,
	}
}

// ===== PAYSLIP REPOSITORY TESTS =====

func TestPayslipRepository_UpsertDraft_ReplacesDraft(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateAllTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)
	repo := postgresql.NewPayslipRepository(db)

	first, err := repo.UpsertDraft(ctx, draftPayslip(companyID, employeeID))
	require.NoError(t, err)
	assert.Equal(t, payslip.StatusDraft, first.Status)

	// Regenerating the same period rewrites the same row.
	p := draftPayslip(companyID, employeeID)
	p.TotalWorkedHours = 168
	p.GrossAmount = decimal.RequireFromString("3400.00")
	second, err := repo.UpsertDraft(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int
	err = db.QueryRow(ctx,
		"SELECT COUNT(*) FROM payslips WHERE employee_id = $1", employeeID,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := repo.GetByID(ctx, first.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, 168.0, got.TotalWorkedHours)
	assert.True(t, got.GrossAmount.Equal(decimal.RequireFromString("3400.00")))
}

func TestPayslipRepository_UpsertDraft_RefusesPaidPeriod(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateAllTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)
	userID := createTestUser(t, ctx, companyID)
	repo := postgresql.NewPayslipRepository(db)

	created, err := repo.UpsertDraft(ctx, draftPayslip(companyID, employeeID))
	require.NoError(t, err)

	paid, err := repo.MarkPaid(ctx, created.ID, userID, companyID)
	require.NoError(t, err)
	assert.Equal(t, payslip.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	_, err = repo.UpsertDraft(ctx, draftPayslip(companyID, employeeID))
	assert.True(t, errors.Is(err, payslip.ErrPayslipAlreadyPaid))

	// The paid amounts are untouched.
	got, err := repo.GetByID(ctx, created.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, payslip.StatusPaid, got.Status)
	assert.True(t, got.GrossAmount.Equal(decimal.RequireFromString("3450.00")))
}

func TestPayslipRepository_MarkPaid_AlreadyPaid(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateAllTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)
	userID := createTestUser(t, ctx, companyID)
	repo := postgresql.NewPayslipRepository(db)

	created, err := repo.UpsertDraft(ctx, draftPayslip(companyID, employeeID))
	require.NoError(t, err)

	_, err = repo.MarkPaid(ctx, created.ID, userID, companyID)
	require.NoError(t, err)

	_, err = repo.MarkPaid(ctx, created.ID, userID, companyID)
	assert.True(t, errors.Is(err, payslip.ErrPayslipAlreadyPaid))
}
