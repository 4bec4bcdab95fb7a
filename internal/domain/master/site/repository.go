package site

import (
	"context"
)

// SiteRepository defines data access for work sites.
// All methods take companyID to prevent cross-company data access.
type SiteRepository interface {
	Create(ctx context.Context, s Site) (Site, error)
	GetByID(ctx context.Context, id string, companyID string) (Site, error)
	Update(ctx context.Context, s Site) error
	Delete(ctx context.Context, id string, companyID string) error
	List(ctx context.Context, companyID string) ([]Site, error)
}
