package shift

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/attendance"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/employee"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/shift"
	"github.com/go-chi/jwtauth/v5"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
	employee.EmployeeRepository
	attendanceService attendance.AttendanceService
}

func NewShiftService(
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
) shift.ShiftService {
	return &ShiftServiceImpl{
		ShiftRepository:    shiftRepo,
		EmployeeRepository: employeeRepo,
		attendanceService:  attendanceService,
	}
}

// CreateShift implements shift.ShiftService. The linked attendance record is
// derived immediately after the shift is stored; a derivation failure does
// not roll the shift back, it is reported in the response instead.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	sh := shift.Shift{
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		SiteID:     req.SiteID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		LunchStart: req.LunchStart,
		LunchEnd:   req.LunchEnd,
		Type:       shift.ShiftType(req.Type),
		Note:       req.Note,
	}

	created, err := s.ShiftRepository.Create(ctx, sh)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	// Create does not join employee data; the deriver needs both.
	created.EmployeeName = &emp.FullName
	created.EmployeeWeeklyHours = &emp.WeeklyHours

	resp := mapShiftToResponse(created)
	resp.Attendance = s.derive(ctx, created)
	return resp, nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.ShiftRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return mapShiftToResponse(sh), nil
}

// UpdateShift implements shift.ShiftService. Hours on the linked attendance
// record are recomputed from the updated shift, preserving a manually
// modified status.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.ShiftRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.SiteID != nil {
		sh.SiteID = req.SiteID
	}
	if req.Date != nil {
		sh.Date, _ = time.Parse("2006-01-02", *req.Date)
	}
	if req.StartTime != nil {
		sh.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		sh.EndTime = *req.EndTime
	}
	if req.LunchStart != nil {
		sh.LunchStart = req.LunchStart
	}
	if req.LunchEnd != nil {
		sh.LunchEnd = req.LunchEnd
	}
	if req.Type != nil {
		sh.Type = shift.ShiftType(*req.Type)
	}
	if req.Note != nil {
		sh.Note = req.Note
	}

	if err := s.ShiftRepository.Update(ctx, sh); err != nil {
		return shift.ShiftResponse{}, err
	}

	resp := mapShiftToResponse(sh)
	resp.Attendance = s.derive(ctx, sh)
	return resp, nil
}

// DeleteShift implements shift.ShiftService. The linked attendance record is
// kept; it stops tracking a shift that no longer exists but remains part of
// the worked-hours history.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return err
	}

	return s.ShiftRepository.Delete(ctx, id, companyID)
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.ListShiftResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return shift.ListShiftResponse{}, err
	}

	shifts, total, err := s.ShiftRepository.List(ctx, filter, companyID)
	if err != nil {
		return shift.ListShiftResponse{}, err
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, mapShiftToResponse(sh))
	}

	return shift.ListShiftResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Shifts:     responses,
	}, nil
}

// derive reprocesses the attendance record linked to sh and reports the
// outcome as a human-readable string for the shift response.
func (s *ShiftServiceImpl) derive(ctx context.Context, sh shift.Shift) *string {
	outcome, err := s.attendanceService.DeriveFromShift(ctx, sh, true)
	var msg string
	if err != nil {
		msg = fmt.Sprintf("attendance derivation failed: %v", err)
	} else {
		msg = fmt.Sprintf("attendance %s", outcome)
	}
	return &msg
}

func mapShiftToResponse(sh shift.Shift) shift.ShiftResponse {
	resp := shift.ShiftResponse{
		ID:         sh.ID,
		EmployeeID: sh.EmployeeID,
		SiteID:     sh.SiteID,
		Date:       sh.Date.Format("2006-01-02"),
		StartTime:  sh.StartTime,
		EndTime:    sh.EndTime,
		LunchStart: sh.LunchStart,
		LunchEnd:   sh.LunchEnd,
		Type:       string(sh.Type),
		Note:       sh.Note,
	}
	if sh.EmployeeName != nil {
		resp.EmployeeName = *sh.EmployeeName
	}
	if !sh.CreatedAt.IsZero() {
		resp.CreatedAt = sh.CreatedAt.Format(time.RFC3339)
	}
	if !sh.UpdatedAt.IsZero() {
		resp.UpdatedAt = sh.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func companyIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}
