package attendance

import (
	"time"
)

// Status is the confirmation state of an attendance record.
type Status string

const (
	StatusAwaitingConfirmation Status = "awaiting_confirmation"
	StatusConfirmed            Status = "confirmed"
	StatusModified             Status = "modified"
	StatusAbsent               Status = "absent"
)

var StatusValues = []string{
	string(StatusAwaitingConfirmation),
	string(StatusConfirmed),
	string(StatusModified),
	string(StatusAbsent),
}

// Attendance is one recorded work session for one employee on one date,
// optionally linked to the shift it was derived from. At most one record
// exists per (employee, date, shift) triple; records without a shift link are
// created manually and never touched by the derivation subsystem.
type Attendance struct {
	ID                 string
	CompanyID          string
	EmployeeID         string
	Date               time.Time
	ShiftID            *string
	EntryTime          *time.Time
	ExitTime           *time.Time
	WorkedHours        float64
	OvertimeHours      float64
	Status             Status
	GeneratedFromShift bool
	Note               *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName *string
}

// Outcome reports what a single-shift derivation did.
type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeUpdated   Outcome = "updated"
	OutcomeSkipped   Outcome = "skipped"
)
