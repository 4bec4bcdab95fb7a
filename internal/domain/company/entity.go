package company

import "time"

// Company is the tenant boundary: every employee, shift, attendance and
// payslip row is scoped to exactly one company.
type Company struct {
	ID        string
	Name      string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
