package payslip

import (
	"context"
)

// PayslipRepository defines data access for payslips.
// All methods take companyID to prevent cross-company data access.
type PayslipRepository interface {
	// UpsertDraft writes a payslip, replacing an existing draft for the same
	// (employee, year, month). Returns ErrPayslipAlreadyPaid if the existing
	// payslip has been paid.
	UpsertDraft(ctx context.Context, p Payslip) (Payslip, error)

	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)

	List(ctx context.Context, filter PayslipFilter, companyID string) ([]Payslip, int64, error)

	// MarkPaid transitions a draft payslip to paid
	MarkPaid(ctx context.Context, id string, paidBy string, companyID string) (Payslip, error)

	// SummarizeAttendance aggregates attendance hours for one employee in
	// one calendar month. Absent records contribute to DaysAbsent only.
	SummarizeAttendance(ctx context.Context, employeeID string, year, month int, companyID string) (AttendanceTotals, error)
}
