package shift

import "time"

type ShiftType string

const (
	ShiftTypeRegular  ShiftType = "regular"
	ShiftTypeOvertime ShiftType = "overtime"
	ShiftTypeHoliday  ShiftType = "holiday"
)

var ShiftTypeValues = []string{
	string(ShiftTypeRegular),
	string(ShiftTypeOvertime),
	string(ShiftTypeHoliday),
}

// Shift is a planned work interval for an employee on a calendar date.
// Times are wall-clock "HH:mm" strings in the company's operating timezone;
// an end at or before the start means the shift crosses midnight.
type Shift struct {
	ID         string
	CompanyID  string
	EmployeeID string
	SiteID     *string
	Date       time.Time
	StartTime  string
	EndTime    string
	LunchStart *string
	LunchEnd   *string
	Type       ShiftType
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName        *string
	EmployeeWeeklyHours *float64
}
