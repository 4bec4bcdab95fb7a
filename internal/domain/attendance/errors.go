package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrMissingClockTimes  = errors.New("attendance has no entry or exit time to recompute from")
)
