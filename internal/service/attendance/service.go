package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/attendance"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/employee"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/shift"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/timeclock"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	shift.ShiftRepository
	employee.EmployeeRepository
	clock timeclock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	clock timeclock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		ShiftRepository:      shiftRepo,
		EmployeeRepository:   employeeRepo,
		clock:                clock,
	}
}

// DeriveFromShift implements attendance.AttendanceService.
//
// One read and at most one write per invocation. The write is an atomic
// upsert, so two racing derivations of the same shift cannot create duplicate
// records: the loser of the insert race lands on the update path.
func (s *AttendanceServiceImpl) DeriveFromShift(ctx context.Context, sh shift.Shift, overwrite bool) (attendance.Outcome, error) {
	existing, err := s.AttendanceRepository.GetByShift(ctx, sh.EmployeeID, sh.Date, sh.ID, sh.CompanyID)
	if err != nil {
		return "", err
	}
	if existing != nil && !overwrite {
		return attendance.OutcomeSkipped, nil
	}

	totalHours, err := timeclock.ElapsedHours(sh.StartTime, sh.EndTime)
	if err != nil {
		return "", fmt.Errorf("invalid shift times: %w", err)
	}

	lunchHours := 0.0
	if sh.LunchStart != nil && sh.LunchEnd != nil {
		lunchHours, err = timeclock.ElapsedHours(*sh.LunchStart, *sh.LunchEnd)
		if err != nil {
			return "", fmt.Errorf("invalid lunch times: %w", err)
		}
	} else if totalHours >= 6 {
		lunchHours = 0.5
	}
	workedHours := timeclock.Round2(math.Max(0, totalHours-lunchHours))

	var weeklyHours float64
	if sh.EmployeeWeeklyHours != nil {
		weeklyHours = *sh.EmployeeWeeklyHours
	}
	dailyHours := timeclock.Round2(weeklyHours / 5)
	if dailyHours == 0 {
		dailyHours = 8
	}
	overtimeHours := timeclock.Round2(math.Max(0, workedHours-dailyHours))

	// Entry and exit share the shift's calendar date even when the interval
	// crosses midnight; the elapsed-hours wraparound already accounted for it.
	entryTime, err := s.clock.Combine(sh.Date, sh.StartTime)
	if err != nil {
		return "", err
	}
	exitTime, err := s.clock.Combine(sh.Date, sh.EndTime)
	if err != nil {
		return "", err
	}

	att := attendance.Attendance{
		CompanyID:          sh.CompanyID,
		EmployeeID:         sh.EmployeeID,
		Date:               sh.Date,
		ShiftID:            &sh.ID,
		EntryTime:          &entryTime,
		ExitTime:           &exitTime,
		WorkedHours:        workedHours,
		OvertimeHours:      overtimeHours,
		Status:             attendance.StatusConfirmed,
		GeneratedFromShift: true,
	}
	if existing != nil {
		att.ID = existing.ID
		att.Note = existing.Note
	}

	_, inserted, err := s.AttendanceRepository.UpsertGenerated(ctx, att)
	if err != nil {
		return "", err
	}
	if inserted {
		return attendance.OutcomeGenerated, nil
	}
	return attendance.OutcomeUpdated, nil
}

// GenerateRange implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GenerateRange(ctx context.Context, req attendance.GenerateRangeRequest) (attendance.GenerateRangeResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return attendance.GenerateRangeResponse{}, err
	}

	return s.GenerateRangeForCompany(ctx, companyID, req)
}

// GenerateRangeForCompany implements attendance.AttendanceService.
//
// Shifts are processed strictly sequentially in date order. A failing shift
// is reported in Errors and the batch continues; partial success is expected
// and not retried.
func (s *AttendanceServiceImpl) GenerateRangeForCompany(ctx context.Context, companyID string, req attendance.GenerateRangeRequest) (attendance.GenerateRangeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.GenerateRangeResponse{}, err
	}

	from, _ := time.Parse("2006-01-02", req.DateFrom)
	to, _ := time.Parse("2006-01-02", req.DateTo)

	shifts, err := s.ShiftRepository.ListForRange(ctx, from, to, req.EmployeeID, req.SiteID, companyID)
	if err != nil {
		return attendance.GenerateRangeResponse{}, fmt.Errorf("failed to list shifts in range: %w", err)
	}

	resp := attendance.GenerateRangeResponse{Errors: []string{}}
	for _, sh := range shifts {
		outcome, err := s.DeriveFromShift(ctx, sh, req.Overwrite)
		if err != nil {
			employeeName := sh.EmployeeID
			if sh.EmployeeName != nil {
				employeeName = *sh.EmployeeName
			}
			resp.Errors = append(resp.Errors, fmt.Sprintf(
				"shift %s (%s, %s): %v",
				sh.ID, employeeName, sh.Date.Format("2006-01-02"), err,
			))
			continue
		}

		switch outcome {
		case attendance.OutcomeGenerated:
			resp.Generated++
		case attendance.OutcomeUpdated:
			resp.Updated++
		case attendance.OutcomeSkipped:
			resp.Skipped++
		}
	}

	return resp, nil
}

// Confirm implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Confirm(ctx context.Context, req attendance.ConfirmRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.EntryTime == nil && req.ExitTime == nil {
		// Note-only confirm never recomputes hours.
		att.Status = attendance.StatusConfirmed
	} else {
		entryClock, err := s.resolveClock(req.EntryTime, att.EntryTime)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		exitClock, err := s.resolveClock(req.ExitTime, att.ExitTime)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}

		totalHours, err := timeclock.ElapsedHours(entryClock, exitClock)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}

		// Shift-level lunch windows are not known at this stage, only the
		// fixed deduction applies.
		lunchHours := 0.0
		if totalHours >= 6 {
			lunchHours = 0.5
		}
		workedHours := timeclock.Round2(math.Max(0, totalHours-lunchHours))

		emp, err := s.EmployeeRepository.GetByID(ctx, att.EmployeeID, companyID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		dailyHours := timeclock.Round2(emp.WeeklyHours / 5)
		if dailyHours == 0 {
			dailyHours = 8
		}

		entryTime, err := s.clock.Combine(att.Date, entryClock)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		exitTime, err := s.clock.Combine(att.Date, exitClock)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}

		att.EntryTime = &entryTime
		att.ExitTime = &exitTime
		att.WorkedHours = workedHours
		att.OvertimeHours = timeclock.Round2(math.Max(0, workedHours-dailyHours))
		att.Status = attendance.StatusModified
	}

	if req.Note != nil {
		att.Note = req.Note
	}

	if err := s.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return s.mapAttendanceToResponse(att), nil
}

// MarkAbsent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, req attendance.MarkAbsentRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Applies regardless of the record's current status.
	att.WorkedHours = 0
	att.OvertimeHours = 0
	att.Status = attendance.StatusAbsent
	if req.Note != nil {
		att.Note = req.Note
	} else {
		defaultNote := "Absence recorded"
		att.Note = &defaultNote
	}

	if err := s.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return s.mapAttendanceToResponse(att), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := s.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, s.mapAttendanceToResponse(att))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return s.mapAttendanceToResponse(att), nil
}

// resolveClock picks the override wall-clock string when given, otherwise
// formats the stored instant. Missing both is ErrMissingClockTimes.
func (s *AttendanceServiceImpl) resolveClock(override *string, stored *time.Time) (string, error) {
	if override != nil {
		return *override, nil
	}
	if stored == nil {
		return "", attendance.ErrMissingClockTimes
	}
	return stored.In(s.clock.Location()).Format("15:04"), nil
}

func (s *AttendanceServiceImpl) mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                 att.ID,
		EmployeeID:         att.EmployeeID,
		Date:               att.Date.Format("2006-01-02"),
		ShiftID:            att.ShiftID,
		EntryTime:          s.formatInstant(att.EntryTime),
		ExitTime:           s.formatInstant(att.ExitTime),
		WorkedHours:        att.WorkedHours,
		OvertimeHours:      att.OvertimeHours,
		Status:             string(att.Status),
		GeneratedFromShift: att.GeneratedFromShift,
		Note:               att.Note,
	}
	if att.EmployeeName != nil {
		resp.EmployeeName = *att.EmployeeName
	}
	if !att.CreatedAt.IsZero() {
		resp.CreatedAt = att.CreatedAt.Format(time.RFC3339)
	}
	if !att.UpdatedAt.IsZero() {
		resp.UpdatedAt = att.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func (s *AttendanceServiceImpl) formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(s.clock.Location()).Format(time.RFC3339)
	return &formatted
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
