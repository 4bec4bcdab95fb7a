package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access for planned shifts.
// All methods take companyID to prevent cross-company data access.
// Reads join the employee's name and weekly contracted hours, so the
// attendance deriver gets everything it needs from one shift row.
type ShiftRepository interface {
	// Create creates a new shift
	Create(ctx context.Context, sh Shift) (Shift, error)

	// GetByID retrieves a shift by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)

	// Update updates an existing shift
	Update(ctx context.Context, sh Shift) error

	// Delete removes a shift
	Delete(ctx context.Context, id string, companyID string) error

	// List retrieves shifts with filters and pagination
	List(ctx context.Context, filter ShiftFilter, companyID string) ([]Shift, int64, error)

	// ListForRange retrieves all shifts whose date falls in [from, to],
	// optionally filtered by employee and site, ordered by date ascending.
	ListForRange(ctx context.Context, from, to time.Time, employeeID, siteID *string, companyID string) ([]Shift, error)
}
