package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft Status = "draft"
	StatusPaid  Status = "paid"
)

// OvertimeMultiplier is the premium applied to overtime hours.
var OvertimeMultiplier = decimal.NewFromFloat(1.25)

// Payslip is a monthly pay computation for one employee, aggregated from
// attendance records. One payslip exists per (employee, year, month);
// regenerating replaces a draft but never a paid one.
type Payslip struct {
	ID                 string
	CompanyID          string
	EmployeeID         string
	PeriodMonth        int
	PeriodYear         int
	TotalWorkedHours   float64
	TotalOvertimeHours float64
	DaysWorked         int
	DaysAbsent         int
	BaseAmount         decimal.Decimal
	OvertimeAmount     decimal.Decimal
	GrossAmount        decimal.Decimal
	Status             Status
	PaidAt             *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName *string
}

// AttendanceTotals aggregates a month of attendance for one employee.
// Overtime hours are a subset of worked hours, so base pay is computed on
// (worked - overtime).
type AttendanceTotals struct {
	WorkedHours   float64
	OvertimeHours float64
	DaysWorked    int
	DaysAbsent    int
}
