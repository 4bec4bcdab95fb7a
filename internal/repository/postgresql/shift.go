package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/shift"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `
	sh.id, sh.company_id, sh.employee_id, sh.site_id, sh.date,
	sh.start_time, sh.end_time, sh.lunch_start, sh.lunch_end,
	sh.type, sh.note, sh.created_at, sh.updated_at,
	e.full_name AS employee_name,
	e.weekly_hours AS employee_weekly_hours`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var sh shift.Shift
	err := row.Scan(
		&sh.ID, &sh.CompanyID, &sh.EmployeeID, &sh.SiteID, &sh.Date,
		&sh.StartTime, &sh.EndTime, &sh.LunchStart, &sh.LunchEnd,
		&sh.Type, &sh.Note, &sh.CreatedAt, &sh.UpdatedAt,
		&sh.EmployeeName, &sh.EmployeeWeeklyHours,
	)
	return sh, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	sh.ID = uuid.NewString()

	query := `
		INSERT INTO shifts (
			id, company_id, employee_id, site_id, date,
			start_time, end_time, lunch_start, lunch_end, type, note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sh.ID, sh.CompanyID, sh.EmployeeID, sh.SiteID, sh.Date,
		sh.StartTime, sh.EndTime, sh.LunchStart, sh.LunchEnd, sh.Type, sh.Note,
	).Scan(&sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return sh, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts sh
		LEFT JOIN employees e ON e.id = sh.employee_id
		WHERE sh.id = $1 AND sh.company_id = $2
	`

	sh, err := scanShift(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return sh, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, sh shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET site_id = $1, date = $2, start_time = $3, end_time = $4,
			lunch_start = $5, lunch_end = $6, type = $7, note = $8, updated_at = NOW()
		WHERE id = $9 AND company_id = $10
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		sh.SiteID, sh.Date, sh.StartTime, sh.EndTime,
		sh.LunchStart, sh.LunchEnd, sh.Type, sh.Note,
		sh.ID, sh.CompanyID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to update shift: %w", err)
	}

	return nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context, filter shift.ShiftFilter, companyID string) ([]shift.Shift, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "sh.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND sh.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.SiteID != nil && *filter.SiteID != "" {
		baseWhere += fmt.Sprintf(" AND sh.site_id = $%d", argIdx)
		args = append(args, *filter.SiteID)
		argIdx++
	}
	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND sh.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND sh.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND sh.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM shifts sh WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
	}

	orderByField := "sh.date"
	switch filter.SortBy {
	case "start_time":
		orderByField = "sh.start_time"
	case "type":
		orderByField = "sh.type"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM shifts sh
		LEFT JOIN employees e ON e.id = sh.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, shiftColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}

	return shifts, total, nil
}

// ListForRange implements shift.ShiftRepository.
func (r *shiftRepository) ListForRange(ctx context.Context, from, to time.Time, employeeID, siteID *string, companyID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "sh.company_id = $1 AND sh.date >= $2 AND sh.date <= $3"
	args := []interface{}{companyID, from, to}
	argIdx := 4

	if employeeID != nil && *employeeID != "" {
		baseWhere += fmt.Sprintf(" AND sh.employee_id = $%d", argIdx)
		args = append(args, *employeeID)
		argIdx++
	}
	if siteID != nil && *siteID != "" {
		baseWhere += fmt.Sprintf(" AND sh.site_id = $%d", argIdx)
		args = append(args, *siteID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM shifts sh
		LEFT JOIN employees e ON e.id = sh.employee_id
		WHERE %s
		ORDER BY sh.date ASC, sh.start_time ASC
	`, shiftColumns, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts for range: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}

	return shifts, nil
}
