package attendance

import (
	"context"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/shift"
)

// AttendanceService defines business logic for attendance derivation and
// lifecycle operations.
type AttendanceService interface {
	// DeriveFromShift computes worked/overtime hours for one shift and
	// upserts the linked attendance record. With overwrite false an existing
	// record is left untouched and OutcomeSkipped is returned.
	DeriveFromShift(ctx context.Context, sh shift.Shift, overwrite bool) (Outcome, error)

	// GenerateRange derives attendance for every shift in a date window,
	// scoped to the company in the caller's claims. One failing shift never
	// aborts the batch; failures are reported in the result.
	GenerateRange(ctx context.Context, req GenerateRangeRequest) (GenerateRangeResponse, error)

	// GenerateRangeForCompany is GenerateRange with an explicit company
	// scope, for callers outside a request context (cron, scripts).
	GenerateRangeForCompany(ctx context.Context, companyID string, req GenerateRangeRequest) (GenerateRangeResponse, error)

	// Confirm marks an attendance record confirmed, optionally overriding
	// entry/exit times (which recomputes hours and marks it modified).
	Confirm(ctx context.Context, req ConfirmRequest) (AttendanceResponse, error)

	// MarkAbsent zeroes the record's hours and sets status absent,
	// regardless of its current state.
	MarkAbsent(ctx context.Context, req MarkAbsentRequest) (AttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin/manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
}
