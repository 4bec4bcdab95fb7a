package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
// All methods take companyID to prevent cross-company data access.
type AttendanceRepository interface {
	// GetByShift retrieves the attendance record linked to a specific shift,
	// keyed on (employee, date, shift). Returns (nil, nil) when none exists.
	GetByShift(ctx context.Context, employeeID string, date time.Time, shiftID string, companyID string) (*Attendance, error)

	// UpsertGenerated writes a derived attendance record atomically. On
	// conflict with the (employee, date, shift) unique key it updates the
	// existing row, preserving status "modified" if already set. The returned
	// bool reports whether a new row was inserted.
	UpsertGenerated(ctx context.Context, att Attendance) (Attendance, bool, error)

	// GetByID retrieves attendance by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// Update rewrites the mutable fields of an existing attendance record
	Update(ctx context.Context, att Attendance) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)
}
