package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/payslip"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	p.id, p.company_id, p.employee_id, p.period_month, p.period_year,
	p.total_worked_hours, p.total_overtime_hours, p.days_worked, p.days_absent,
	p.base_amount, p.overtime_amount, p.gross_amount,
	p.status, p.paid_at, p.created_at, p.updated_at,
	e.full_name AS employee_name`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var p payslip.Payslip
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.EmployeeID, &p.PeriodMonth, &p.PeriodYear,
		&p.TotalWorkedHours, &p.TotalOvertimeHours, &p.DaysWorked, &p.DaysAbsent,
		&p.BaseAmount, &p.OvertimeAmount, &p.GrossAmount,
		&p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName,
	)
	return p, err
}

// UpsertDraft implements payslip.PayslipRepository.
//
// The DO UPDATE carries a WHERE guard on the existing row's status, so a paid
// payslip is never overwritten: in that case the statement touches nothing and
// RETURNING yields no row, which maps to ErrPayslipAlreadyPaid.
func (r *payslipRepository) UpsertDraft(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `
		INSERT INTO payslips (
			id, company_id, employee_id, period_month, period_year,
			total_worked_hours, total_overtime_hours, days_worked, days_absent,
			base_amount, overtime_amount, gross_amount, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'draft'
		)
		ON CONFLICT (employee_id, period_year, period_month)
		DO UPDATE SET
			total_worked_hours = EXCLUDED.total_worked_hours,
			total_overtime_hours = EXCLUDED.total_overtime_hours,
			days_worked = EXCLUDED.days_worked,
			days_absent = EXCLUDED.days_absent,
			base_amount = EXCLUDED.base_amount,
			overtime_amount = EXCLUDED.overtime_amount,
			gross_amount = EXCLUDED.gross_amount,
			updated_at = NOW()
		WHERE payslips.status = 'draft'
		RETURNING id, status, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.CompanyID, p.EmployeeID, p.PeriodMonth, p.PeriodYear,
		p.TotalWorkedHours, p.TotalOvertimeHours, p.DaysWorked, p.DaysAbsent,
		p.BaseAmount, p.OvertimeAmount, p.GrossAmount,
	).Scan(&p.ID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipAlreadyPaid
		}
		return payslip.Payslip{}, fmt.Errorf("failed to upsert payslip: %w", err)
	}

	return p, nil
}

// GetByID implements payslip.PayslipRepository.
func (r *payslipRepository) GetByID(ctx context.Context, id string, companyID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1 AND p.company_id = $2
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip by ID: %w", err)
	}

	return p, nil
}

// List implements payslip.PayslipRepository.
func (r *payslipRepository) List(ctx context.Context, filter payslip.PayslipFilter, companyID string) ([]payslip.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "p.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND p.period_year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Month != nil {
		baseWhere += fmt.Sprintf(" AND p.period_month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM payslips p WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.period_year DESC, p.period_month DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, payslipColumns, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}

	return payslips, total, nil
}

// MarkPaid implements payslip.PayslipRepository.
func (r *payslipRepository) MarkPaid(ctx context.Context, id string, paidBy string, companyID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET status = 'paid', paid_at = NOW(), paid_by = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND status = 'draft'
		RETURNING id, status, paid_at, updated_at
	`

	var (
		p      payslip.Payslip
		paidAt *time.Time
	)
	err := q.QueryRow(ctx, query, paidBy, id, companyID).Scan(&p.ID, &p.Status, &paidAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Distinguish already-paid from missing.
			existing, getErr := r.GetByID(ctx, id, companyID)
			if getErr != nil {
				return payslip.Payslip{}, getErr
			}
			if existing.Status == payslip.StatusPaid {
				return payslip.Payslip{}, payslip.ErrPayslipAlreadyPaid
			}
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to mark payslip paid: %w", err)
	}
	p.PaidAt = paidAt

	return r.GetByID(ctx, id, companyID)
}

// SummarizeAttendance implements payslip.PayslipRepository.
func (r *payslipRepository) SummarizeAttendance(ctx context.Context, employeeID string, year, month int, companyID string) (payslip.AttendanceTotals, error) {
	q := GetQuerier(ctx, r.db)

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	query := `
		SELECT
			COALESCE(SUM(worked_hours) FILTER (WHERE status <> 'absent'), 0),
			COALESCE(SUM(overtime_hours) FILTER (WHERE status <> 'absent'), 0),
			COUNT(DISTINCT date) FILTER (WHERE status <> 'absent' AND worked_hours > 0),
			COUNT(DISTINCT date) FILTER (WHERE status = 'absent')
		FROM attendances
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date >= $3
		  AND date < $4
	`

	var totals payslip.AttendanceTotals
	err := q.QueryRow(ctx, query, employeeID, companyID, periodStart, periodEnd).Scan(
		&totals.WorkedHours, &totals.OvertimeHours, &totals.DaysWorked, &totals.DaysAbsent,
	)
	if err != nil {
		return payslip.AttendanceTotals{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	return totals, nil
}
