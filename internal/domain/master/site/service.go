package site

import (
	"context"
)

// SiteService defines business logic for work sites
type SiteService interface {
	CreateSite(ctx context.Context, req CreateSiteRequest) (SiteResponse, error)
	GetSite(ctx context.Context, id string) (SiteResponse, error)
	UpdateSite(ctx context.Context, req UpdateSiteRequest) (SiteResponse, error)
	DeleteSite(ctx context.Context, id string) error
	ListSites(ctx context.Context) ([]SiteResponse, error)
}
