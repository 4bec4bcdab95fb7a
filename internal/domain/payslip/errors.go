package payslip

import "errors"

// Payslip domain errors
var (
	ErrPayslipNotFound    = errors.New("payslip not found")
	ErrPayslipAlreadyPaid = errors.New("payslip has already been paid")
)
