package payslip

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/employee"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/payslip"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "11111111-1111-4111-8111-111111111111"
	testEmployeeID = "22222222-2222-4222-8222-222222222222"
	testUserID     = "33333333-3333-4333-8333-333333333333"
)

type fakePayslipRepo struct {
	payslips map[string]*payslip.Payslip
	totals   payslip.AttendanceTotals
}

func periodKey(employeeID string, year, month int) string {
	return fmt.Sprintf("%s|%d|%d", employeeID, year, month)
}

func (r *fakePayslipRepo) UpsertDraft(_ context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	key := periodKey(p.EmployeeID, p.PeriodYear, p.PeriodMonth)
	if existing, ok := r.payslips[key]; ok {
		if existing.Status == payslip.StatusPaid {
			return payslip.Payslip{}, payslip.ErrPayslipAlreadyPaid
		}
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = uuid.NewString()
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	cp := p
	r.payslips[key] = &cp
	return p, nil
}

func (r *fakePayslipRepo) GetByID(_ context.Context, id string, companyID string) (payslip.Payslip, error) {
	for _, p := range r.payslips {
		if p.ID == id && p.CompanyID == companyID {
			return *p, nil
		}
	}
	return payslip.Payslip{}, payslip.ErrPayslipNotFound
}

func (r *fakePayslipRepo) List(_ context.Context, _ payslip.PayslipFilter, companyID string) ([]payslip.Payslip, int64, error) {
	var out []payslip.Payslip
	for _, p := range r.payslips {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePayslipRepo) MarkPaid(_ context.Context, id string, paidBy string, companyID string) (payslip.Payslip, error) {
	for _, p := range r.payslips {
		if p.ID != id || p.CompanyID != companyID {
			continue
		}
		if p.Status == payslip.StatusPaid {
			return payslip.Payslip{}, payslip.ErrPayslipAlreadyPaid
		}
		now := time.Now()
		p.Status = payslip.StatusPaid
		p.PaidAt = &now
		p.UpdatedAt = now
		_ = paidBy
		return *p, nil
	}
	return payslip.Payslip{}, payslip.ErrPayslipNotFound
}

func (r *fakePayslipRepo) SummarizeAttendance(_ context.Context, _ string, _, _ int, _ string) (payslip.AttendanceTotals, error) {
	return r.totals, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	emp.ID = uuid.NewString()
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }

func (r *fakeEmployeeRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

func (r *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter, _ string) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

// ===== HELPERS =====

func newTestService(t *testing.T, totals payslip.AttendanceTotals) (payslip.PayslipService, *fakePayslipRepo) {
	t.Helper()

	payslipRepo := &fakePayslipRepo{
		payslips: make(map[string]*payslip.Payslip),
		totals:   totals,
	}
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {
			ID:         testEmployeeID,
			CompanyID:  testCompanyID,
			FullName:   "Mario Rossi",
			HourlyRate: decimal.RequireFromString("20.00"),
		},
	}}

	return NewPayslipService(payslipRepo, empRepo), payslipRepo
}

func authedContext(t *testing.T, companyID string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":    testUserID,
		"company_id": companyID,
		"role":       "admin",
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ===== PAYSLIP SERVICE TESTS =====

func TestGeneratePayslip_ComputesAmounts(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, payslip.AttendanceTotals{
		WorkedHours:   170,
		OvertimeHours: 10,
		DaysWorked:    21,
		DaysAbsent:    1,
	})
	ctx := authedContext(t, testCompanyID)

	resp, err := svc.GeneratePayslip(ctx, payslip.GeneratePayslipRequest{
		EmployeeID: testEmployeeID,
		Month:      3,
		Year:       2025,
	})
	require.NoError(t, err)

	// 160 base hours at 20.00 plus 10 overtime hours at 20.00 * 1.25.
	assert.Equal(t, "3200.00", resp.BaseAmount)
	assert.Equal(t, "250.00", resp.OvertimeAmount)
	assert.Equal(t, "3450.00", resp.GrossAmount)
	assert.Equal(t, 170.0, resp.TotalWorkedHours)
	assert.Equal(t, 10.0, resp.TotalOvertimeHours)
	assert.Equal(t, 21, resp.DaysWorked)
	assert.Equal(t, 1, resp.DaysAbsent)
	assert.Equal(t, string(payslip.StatusDraft), resp.Status)
	assert.Equal(t, "Mario Rossi", resp.EmployeeName)
}

func TestGeneratePayslip_EmptyMonth(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, payslip.AttendanceTotals{})
	ctx := authedContext(t, testCompanyID)

	resp, err := svc.GeneratePayslip(ctx, payslip.GeneratePayslipRequest{
		EmployeeID: testEmployeeID,
		Month:      3,
		Year:       2025,
	})
	require.NoError(t, err)

	assert.Equal(t, "0.00", resp.GrossAmount)
	assert.Equal(t, 0, resp.DaysWorked)
}

func TestGeneratePayslip_RegenerateReplacesDraft(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t, payslip.AttendanceTotals{WorkedHours: 160})
	ctx := authedContext(t, testCompanyID)

	req := payslip.GeneratePayslipRequest{EmployeeID: testEmployeeID, Month: 3, Year: 2025}

	first, err := svc.GeneratePayslip(ctx, req)
	require.NoError(t, err)

	repo.totals = payslip.AttendanceTotals{WorkedHours: 168, OvertimeHours: 8}

	second, err := svc.GeneratePayslip(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID) // same period, same row
	assert.Equal(t, 168.0, second.TotalWorkedHours)
	assert.Len(t, repo.payslips, 1)
}

func TestGeneratePayslip_RefusesPaidPeriod(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, payslip.AttendanceTotals{WorkedHours: 160})
	ctx := authedContext(t, testCompanyID)

	req := payslip.GeneratePayslipRequest{EmployeeID: testEmployeeID, Month: 3, Year: 2025}

	first, err := svc.GeneratePayslip(ctx, req)
	require.NoError(t, err)

	_, err = svc.MarkPaid(ctx, first.ID)
	require.NoError(t, err)

	_, err = svc.GeneratePayslip(ctx, req)
	assert.True(t, errors.Is(err, payslip.ErrPayslipAlreadyPaid))
}

func TestGeneratePayslip_UnknownEmployee(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, payslip.AttendanceTotals{})
	ctx := authedContext(t, testCompanyID)

	_, err := svc.GeneratePayslip(ctx, payslip.GeneratePayslipRequest{
		EmployeeID: uuid.NewString(),
		Month:      3,
		Year:       2025,
	})
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
}

func TestMarkPaid_SetsPaidAt(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, payslip.AttendanceTotals{WorkedHours: 160})
	ctx := authedContext(t, testCompanyID)

	created, err := svc.GeneratePayslip(ctx, payslip.GeneratePayslipRequest{
		EmployeeID: testEmployeeID,
		Month:      3,
		Year:       2025,
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, string(payslip.StatusPaid), paid.Status)
	require.NotNil(t, paid.PaidAt)
}

func TestMarkPaid_AlreadyPaid(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, payslip.AttendanceTotals{WorkedHours: 160})
	ctx := authedContext(t, testCompanyID)

	created, err := svc.GeneratePayslip(ctx, payslip.GeneratePayslipRequest{
		EmployeeID: testEmployeeID,
		Month:      3,
		Year:       2025,
	})
	require.NoError(t, err)

	_, err = svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.MarkPaid(ctx, created.ID)
	assert.True(t, errors.Is(err, payslip.ErrPayslipAlreadyPaid))
}
