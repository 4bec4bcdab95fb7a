package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/attendance"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// GetByShift implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByShift(ctx context.Context, employeeID string, date time.Time, shiftID string, companyID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, date, shift_id,
			   entry_time, exit_time, worked_hours, overtime_hours,
			   status, generated_from_shift, note, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		  AND shift_id = $3
		  AND company_id = $4
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date, shiftID, companyID).Scan(
		&att.ID, &att.CompanyID, &att.EmployeeID, &att.Date, &att.ShiftID,
		&att.EntryTime, &att.ExitTime, &att.WorkedHours, &att.OvertimeHours,
		&att.Status, &att.GeneratedFromShift, &att.Note, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no attendance derived from this shift yet
		}
		return nil, fmt.Errorf("failed to get attendance by shift: %w", err)
	}

	return &att, nil
}

// UpsertGenerated implements attendance.AttendanceRepository.
//
// The write is a single atomic statement against the partial unique index on
// (employee_id, date, shift_id), so two concurrent derivations of the same
// shift cannot create duplicate rows: one inserts, the other updates. The
// CASE keeps a manually modified record marked as such across regeneration.
func (r *attendanceRepository) UpsertGenerated(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, r.db)

	if att.ID == "" {
		att.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendances (
			id, company_id, employee_id, date, shift_id,
			entry_time, exit_time, worked_hours, overtime_hours,
			status, generated_from_shift, note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, $11
		)
		ON CONFLICT (employee_id, date, shift_id) WHERE shift_id IS NOT NULL
		DO UPDATE SET
			entry_time = EXCLUDED.entry_time,
			exit_time = EXCLUDED.exit_time,
			worked_hours = EXCLUDED.worked_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			status = CASE
				WHEN attendances.status = 'modified' THEN attendances.status
				ELSE EXCLUDED.status
			END,
			generated_from_shift = TRUE,
			updated_at = NOW()
		RETURNING id, status, created_at, updated_at, (xmax = 0) AS inserted
	`

	var inserted bool
	err := q.QueryRow(ctx, query,
		att.ID, att.CompanyID, att.EmployeeID, att.Date, att.ShiftID,
		att.EntryTime, att.ExitTime, att.WorkedHours, att.OvertimeHours,
		att.Status, att.Note,
	).Scan(&att.ID, &att.Status, &att.CreatedAt, &att.UpdatedAt, &inserted)
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	att.GeneratedFromShift = true
	return att, inserted, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			a.id, a.company_id, a.employee_id, a.date, a.shift_id,
			a.entry_time, a.exit_time, a.worked_hours, a.overtime_hours,
			a.status, a.generated_from_shift, a.note, a.created_at, a.updated_at,
			e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&att.ID, &att.CompanyID, &att.EmployeeID, &att.Date, &att.ShiftID,
		&att.EntryTime, &att.ExitTime, &att.WorkedHours, &att.OvertimeHours,
		&att.Status, &att.GeneratedFromShift, &att.Note, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET entry_time = $1, exit_time = $2, worked_hours = $3, overtime_hours = $4,
			status = $5, note = $6, updated_at = NOW()
		WHERE id = $7 AND company_id = $8
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		att.EntryTime, att.ExitTime, att.WorkedHours, att.OvertimeHours,
		att.Status, att.Note,
		att.ID, att.CompanyID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "a.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.SiteID != nil && *filter.SiteID != "" {
		baseWhere += fmt.Sprintf(" AND e.site_id = $%d", argIdx)
		args = append(args, *filter.SiteID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "status":
		orderByField = "a.status"
	case "worked_hours":
		orderByField = "a.worked_hours"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT
			a.id, a.company_id, a.employee_id, a.date, a.shift_id,
			a.entry_time, a.exit_time, a.worked_hours, a.overtime_hours,
			a.status, a.generated_from_shift, a.note, a.created_at, a.updated_at,
			e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.CompanyID, &att.EmployeeID, &att.Date, &att.ShiftID,
			&att.EntryTime, &att.ExitTime, &att.WorkedHours, &att.OvertimeHours,
			&att.Status, &att.GeneratedFromShift, &att.Note, &att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, nil
}
