package shift

import (
	"context"
)

// ShiftService defines business logic for shift planning. Creating or
// updating a shift re-derives the linked attendance record.
type ShiftService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id string) (ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error
	ListShifts(ctx context.Context, filter ShiftFilter) (ListShiftResponse, error)
}
