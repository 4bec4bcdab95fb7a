package payslip

import (
	"context"
)

// PayslipService defines business logic for monthly payslips
type PayslipService interface {
	// GeneratePayslip computes a payslip from the month's attendance records
	GeneratePayslip(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error)

	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)

	ListPayslips(ctx context.Context, filter PayslipFilter) (ListPayslipResponse, error)

	// MarkPaid transitions a draft payslip to paid
	MarkPaid(ctx context.Context, id string) (PayslipResponse, error)
}
