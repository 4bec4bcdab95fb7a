package company

import (
	"context"
)

type CompanyRepository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)

	// ListIDs returns every company ID; used by maintenance jobs that walk
	// all tenants.
	ListIDs(ctx context.Context) ([]string, error)
}
