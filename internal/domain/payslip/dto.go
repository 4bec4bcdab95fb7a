package payslip

import (
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/validator"
)

type GeneratePayslipRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *GeneratePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name,omitempty"`
	PeriodMonth        int     `json:"period_month"`
	PeriodYear         int     `json:"period_year"`
	TotalWorkedHours   float64 `json:"total_worked_hours"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
	DaysWorked         int     `json:"days_worked"`
	DaysAbsent         int     `json:"days_absent"`
	BaseAmount         string  `json:"base_amount"`
	OvertimeAmount     string  `json:"overtime_amount"`
	GrossAmount        string  `json:"gross_amount"`
	Status             string  `json:"status"`
	PaidAt             *string `json:"paid_at,omitempty"`
	CreatedAt          string  `json:"created_at,omitempty"`
	UpdatedAt          string  `json:"updated_at,omitempty"`
}

type ListPayslipResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Payslips   []PayslipResponse `json:"payslips"`
}

type PayslipFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PayslipFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Month != nil && !validator.IsValidMonth(*f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(StatusDraft), string(StatusPaid)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: draft, paid",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
