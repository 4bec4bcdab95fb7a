package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/employee"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp.ID = uuid.NewString()

	query := `
		INSERT INTO employees (
			id, company_id, user_id, site_id, full_name, email,
			weekly_hours, hourly_rate, hired_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID, emp.CompanyID, emp.UserID, emp.SiteID, emp.FullName, emp.Email,
		emp.WeeklyHours, emp.HourlyRate, emp.HiredAt,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id, e.company_id, e.user_id, e.site_id, e.full_name, e.email,
			e.weekly_hours, e.hourly_rate, e.hired_at, e.created_at, e.updated_at,
			s.name AS site_name
		FROM employees e
		LEFT JOIN sites s ON s.id = e.site_id
		WHERE e.id = $1 AND e.company_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID, &emp.CompanyID, &emp.UserID, &emp.SiteID, &emp.FullName, &emp.Email,
		&emp.WeeklyHours, &emp.HourlyRate, &emp.HiredAt, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.SiteName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET site_id = $1, full_name = $2, email = $3,
			weekly_hours = $4, hourly_rate = $5, updated_at = NOW()
		WHERE id = $6 AND company_id = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		emp.SiteID, emp.FullName, emp.Email, emp.WeeklyHours, emp.HourlyRate,
		emp.ID, emp.CompanyID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "e.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Name != nil && *filter.Name != "" {
		baseWhere += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Name+"%")
		argIdx++
	}
	if filter.SiteID != nil && *filter.SiteID != "" {
		baseWhere += fmt.Sprintf(" AND e.site_id = $%d", argIdx)
		args = append(args, *filter.SiteID)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM employees e WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	orderByField := "e.full_name"
	if filter.SortBy == "hired_at" {
		orderByField = "e.hired_at"
	}
	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT
			e.id, e.company_id, e.user_id, e.site_id, e.full_name, e.email,
			e.weekly_hours, e.hourly_rate, e.hired_at, e.created_at, e.updated_at,
			s.name AS site_name
		FROM employees e
		LEFT JOIN sites s ON s.id = e.site_id
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
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.CompanyID, &emp.UserID, &emp.SiteID, &emp.FullName, &emp.Email,
			&emp.WeeklyHours, &emp.HourlyRate, &emp.HiredAt, &emp.CreatedAt, &emp.UpdatedAt,
			&emp.SiteName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, total, nil
}
