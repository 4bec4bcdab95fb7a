package payslip

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/employee"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/payslip"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type PayslipServiceImpl struct {
	payslip.PayslipRepository
	employee.EmployeeRepository
}

func NewPayslipService(
	payslipRepo payslip.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
) payslip.PayslipService {
	return &PayslipServiceImpl{
		PayslipRepository:  payslipRepo,
		EmployeeRepository: employeeRepo,
	}
}

// GeneratePayslip implements payslip.PayslipService.
//
// Overtime hours are a subset of worked hours, so base pay covers
// (worked - overtime) at the plain hourly rate and overtime is paid at the
// premium rate on top.
func (s *PayslipServiceImpl) GeneratePayslip(ctx context.Context, req payslip.GeneratePayslipRequest) (payslip.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	totals, err := s.PayslipRepository.SummarizeAttendance(ctx, req.EmployeeID, req.Year, req.Month, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	baseHours := decimal.NewFromFloat(totals.WorkedHours - totals.OvertimeHours)
	overtimeHours := decimal.NewFromFloat(totals.OvertimeHours)

	baseAmount := emp.HourlyRate.Mul(baseHours).Round(2)
	overtimeAmount := emp.HourlyRate.Mul(overtimeHours).Mul(payslip.OvertimeMultiplier).Round(2)

	p := payslip.Payslip{
		CompanyID:          companyID,
		EmployeeID:         req.EmployeeID,
		PeriodMonth:        req.Month,
		PeriodYear:         req.Year,
		TotalWorkedHours:   totals.WorkedHours,
		TotalOvertimeHours: totals.OvertimeHours,
		DaysWorked:         totals.DaysWorked,
		DaysAbsent:         totals.DaysAbsent,
		BaseAmount:         baseAmount,
		OvertimeAmount:     overtimeAmount,
		GrossAmount:        baseAmount.Add(overtimeAmount),
		Status:             payslip.StatusDraft,
	}

	saved, err := s.PayslipRepository.UpsertDraft(ctx, p)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	saved.EmployeeName = &emp.FullName

	return mapPayslipToResponse(saved), nil
}

// GetPayslip implements payslip.PayslipService.
func (s *PayslipServiceImpl) GetPayslip(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	p, err := s.PayslipRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	return mapPayslipToResponse(p), nil
}

// ListPayslips implements payslip.PayslipService.
func (s *PayslipServiceImpl) ListPayslips(ctx context.Context, filter payslip.PayslipFilter) (payslip.ListPayslipResponse, error) {
	if err := filter.Validate(); err != nil {
		return payslip.ListPayslipResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return payslip.ListPayslipResponse{}, err
	}

	payslips, total, err := s.PayslipRepository.List(ctx, filter, companyID)
	if err != nil {
		return payslip.ListPayslipResponse{}, err
	}

	responses := make([]payslip.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		responses = append(responses, mapPayslipToResponse(p))
	}

	return payslip.ListPayslipResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Payslips:   responses,
	}, nil
}

// MarkPaid implements payslip.PayslipService.
func (s *PayslipServiceImpl) MarkPaid(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	p, err := s.PayslipRepository.MarkPaid(ctx, id, userID, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	return mapPayslipToResponse(p), nil
}

func mapPayslipToResponse(p payslip.Payslip) payslip.PayslipResponse {
	resp := payslip.PayslipResponse{
		ID:                 p.ID,
		EmployeeID:         p.EmployeeID,
		PeriodMonth:        p.PeriodMonth,
		PeriodYear:         p.PeriodYear,
		TotalWorkedHours:   p.TotalWorkedHours,
		TotalOvertimeHours: p.TotalOvertimeHours,
		DaysWorked:         p.DaysWorked,
		DaysAbsent:         p.DaysAbsent,
		BaseAmount:         p.BaseAmount.StringFixed(2),
		OvertimeAmount:     p.OvertimeAmount.StringFixed(2),
		GrossAmount:        p.GrossAmount.StringFixed(2),
		Status:             string(p.Status),
	}
	if p.EmployeeName != nil {
		resp.EmployeeName = *p.EmployeeName
	}
	if p.PaidAt != nil {
		paidAt := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func claimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)
	return companyID, userID, nil
}
