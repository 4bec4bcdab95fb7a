package shift

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/attendance"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/employee"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/shift"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "11111111-1111-4111-8111-111111111111"
	testEmployeeID = "22222222-2222-4222-8222-222222222222"
)

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func (r *fakeShiftRepo) Create(_ context.Context, sh shift.Shift) (shift.Shift, error) {
	sh.ID = uuid.NewString()
	sh.CreatedAt = time.Now()
	sh.UpdatedAt = sh.CreatedAt
	r.shifts[sh.ID] = sh
	return sh, nil
}

func (r *fakeShiftRepo) GetByID(_ context.Context, id string, companyID string) (shift.Shift, error) {
	sh, ok := r.shifts[id]
	if !ok || sh.CompanyID != companyID {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return sh, nil
}

func (r *fakeShiftRepo) Update(_ context.Context, sh shift.Shift) error {
	if _, ok := r.shifts[sh.ID]; !ok {
		return shift.ErrShiftNotFound
	}
	sh.UpdatedAt = time.Now()
	r.shifts[sh.ID] = sh
	return nil
}

func (r *fakeShiftRepo) Delete(_ context.Context, id string, companyID string) error {
	sh, ok := r.shifts[id]
	if !ok || sh.CompanyID != companyID {
		return shift.ErrShiftNotFound
	}
	delete(r.shifts, id)
	return nil
}

func (r *fakeShiftRepo) List(_ context.Context, _ shift.ShiftFilter, companyID string) ([]shift.Shift, int64, error) {
	var out []shift.Shift
	for _, sh := range r.shifts {
		if sh.CompanyID == companyID {
			out = append(out, sh)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeShiftRepo) ListForRange(_ context.Context, from, to time.Time, _, _ *string, companyID string) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, sh := range r.shifts {
		if sh.CompanyID == companyID && !sh.Date.Before(from) && !sh.Date.After(to) {
			out = append(out, sh)
		}
	}
	return out, nil
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

// stubAttendanceService records the shifts handed to the deriver so tests can
// check what the shift service forwards.
type stubAttendanceService struct {
	derived   []shift.Shift
	outcome   attendance.Outcome
	deriveErr error
}

func (s *stubAttendanceService) DeriveFromShift(_ context.Context, sh shift.Shift, overwrite bool) (attendance.Outcome, error) {
	s.derived = append(s.derived, sh)
	if !overwrite {
		return "", errors.New("shift writes must always reprocess the linked attendance")
	}
	if s.deriveErr != nil {
		return "", s.deriveErr
	}
	return s.outcome, nil
}

func (s *stubAttendanceService) GenerateRange(_ context.Context, _ attendance.GenerateRangeRequest) (attendance.GenerateRangeResponse, error) {
	return attendance.GenerateRangeResponse{}, nil
}

func (s *stubAttendanceService) GenerateRangeForCompany(_ context.Context, _ string, _ attendance.GenerateRangeRequest) (attendance.GenerateRangeResponse, error) {
	return attendance.GenerateRangeResponse{}, nil
}

func (s *stubAttendanceService) Confirm(_ context.Context, _ attendance.ConfirmRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (s *stubAttendanceService) MarkAbsent(_ context.Context, _ attendance.MarkAbsentRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (s *stubAttendanceService) ListAttendance(_ context.Context, _ attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{}, nil
}

func (s *stubAttendanceService) GetAttendance(_ context.Context, _ string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

// ===== HELPERS =====

func newTestService(t *testing.T) (shift.ShiftService, *fakeShiftRepo, *stubAttendanceService) {
	t.Helper()

	shiftRepo := &fakeShiftRepo{shifts: make(map[string]shift.Shift)}
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {
			ID:          testEmployeeID,
			CompanyID:   testCompanyID,
			FullName:    "Mario Rossi",
			WeeklyHours: 40,
		},
	}}
	attSvc := &stubAttendanceService{outcome: attendance.OutcomeGenerated}

	return NewShiftService(shiftRepo, empRepo, attSvc), shiftRepo, attSvc
}

func authedContext(t *testing.T, companyID string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":    uuid.NewString(),
		"company_id": companyID,
		"role":       "manager",
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ===== SHIFT SERVICE TESTS =====

func TestCreateShift_DerivesAttendance(t *testing.T) {
	t.Parallel()
	svc, repo, attSvc := newTestService(t)
	ctx := authedContext(t, testCompanyID)

	resp, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		EmployeeID: testEmployeeID,
		Date:       "2025-03-10",
		StartTime:  "09:00",
		EndTime:    "17:00",
		Type:       "regular",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Mario Rossi", resp.EmployeeName)
	require.NotNil(t, resp.Attendance)
	assert.Equal(t, "attendance generated", *resp.Attendance)
	assert.Len(t, repo.shifts, 1)

	// The deriver gets employee data joined onto the freshly created shift.
	require.Len(t, attSvc.derived, 1)
	require.NotNil(t, attSvc.derived[0].EmployeeWeeklyHours)
	assert.Equal(t, 40.0, *attSvc.derived[0].EmployeeWeeklyHours)
}

func TestCreateShift_DerivationFailureDoesNotRollBack(t *testing.T) {
	t.Parallel()
	svc, repo, attSvc := newTestService(t)
	ctx := authedContext(t, testCompanyID)
	attSvc.deriveErr = errors.New("boom")

	resp, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		EmployeeID: testEmployeeID,
		Date:       "2025-03-10",
		StartTime:  "09:00",
		EndTime:    "17:00",
		Type:       "regular",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Attendance)
	assert.Contains(t, *resp.Attendance, "attendance derivation failed")
	assert.Len(t, repo.shifts, 1) // shift still stored
}

func TestCreateShift_UnknownEmployee(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t, testCompanyID)

	_, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		EmployeeID: uuid.NewString(),
		Date:       "2025-03-10",
		StartTime:  "09:00",
		EndTime:    "17:00",
		Type:       "regular",
	})
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
	assert.Empty(t, repo.shifts)
}

func TestUpdateShift_ReprocessesAttendance(t *testing.T) {
	t.Parallel()
	svc, _, attSvc := newTestService(t)
	ctx := authedContext(t, testCompanyID)

	created, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		EmployeeID: testEmployeeID,
		Date:       "2025-03-10",
		StartTime:  "09:00",
		EndTime:    "17:00",
		Type:       "regular",
	})
	require.NoError(t, err)
	attSvc.outcome = attendance.OutcomeUpdated

	newEnd := "19:00"
	updated, err := svc.UpdateShift(ctx, shift.UpdateShiftRequest{ID: created.ID, EndTime: &newEnd})
	require.NoError(t, err)

	assert.Equal(t, "19:00", updated.EndTime)
	assert.Equal(t, "09:00", updated.StartTime) // untouched fields survive
	require.NotNil(t, updated.Attendance)
	assert.Equal(t, "attendance updated", *updated.Attendance)
	assert.Len(t, attSvc.derived, 2)
}

func TestUpdateShift_NotFound(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	ctx := authedContext(t, testCompanyID)

	newEnd := "19:00"
	_, err := svc.UpdateShift(ctx, shift.UpdateShiftRequest{ID: uuid.NewString(), EndTime: &newEnd})
	assert.True(t, errors.Is(err, shift.ErrShiftNotFound))
}

func TestDeleteShift_CompanyIsolation(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t, testCompanyID)

	created, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		EmployeeID: testEmployeeID,
		Date:       "2025-03-10",
		StartTime:  "09:00",
		EndTime:    "17:00",
		Type:       "regular",
	})
	require.NoError(t, err)

	otherCompany := authedContext(t, uuid.NewString())
	err = svc.DeleteShift(otherCompany, created.ID)
	assert.True(t, errors.Is(err, shift.ErrShiftNotFound))
	assert.Len(t, repo.shifts, 1)

	require.NoError(t, svc.DeleteShift(ctx, created.ID))
	assert.Empty(t, repo.shifts)
}

func TestGetShift_NotFound(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	ctx := authedContext(t, testCompanyID)

	_, err := svc.GetShift(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, shift.ErrShiftNotFound))
}
