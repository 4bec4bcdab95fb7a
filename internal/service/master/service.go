package master

import (
	"context"
	"fmt"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/master/site"
	"github.com/go-chi/jwtauth/v5"
)

type SiteServiceImpl struct {
	site.SiteRepository
}

func NewSiteService(siteRepo site.SiteRepository) site.SiteService {
	return &SiteServiceImpl{
		SiteRepository: siteRepo,
	}
}

// CreateSite implements site.SiteService.
func (s *SiteServiceImpl) CreateSite(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return site.SiteResponse{}, err
	}

	created, err := s.SiteRepository.Create(ctx, site.Site{
		CompanyID: companyID,
		Name:      req.Name,
		Address:   req.Address,
	})
	if err != nil {
		return site.SiteResponse{}, err
	}

	return mapSiteToResponse(created), nil
}

// GetSite implements site.SiteService.
func (s *SiteServiceImpl) GetSite(ctx context.Context, id string) (site.SiteResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return site.SiteResponse{}, err
	}

	found, err := s.SiteRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return site.SiteResponse{}, err
	}

	return mapSiteToResponse(found), nil
}

// UpdateSite implements site.SiteService.
func (s *SiteServiceImpl) UpdateSite(ctx context.Context, req site.UpdateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return site.SiteResponse{}, err
	}

	found, err := s.SiteRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return site.SiteResponse{}, err
	}

	if req.Name != nil {
		found.Name = *req.Name
	}
	if req.Address != nil {
		found.Address = req.Address
	}

	if err := s.SiteRepository.Update(ctx, found); err != nil {
		return site.SiteResponse{}, err
	}

	return mapSiteToResponse(found), nil
}

// DeleteSite implements site.SiteService.
func (s *SiteServiceImpl) DeleteSite(ctx context.Context, id string) error {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return err
	}

	return s.SiteRepository.Delete(ctx, id, companyID)
}

// ListSites implements site.SiteService.
func (s *SiteServiceImpl) ListSites(ctx context.Context) ([]site.SiteResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	sites, err := s.SiteRepository.List(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]site.SiteResponse, 0, len(sites))
	for _, found := range sites {
		responses = append(responses, mapSiteToResponse(found))
	}
	return responses, nil
}

func mapSiteToResponse(s site.Site) site.SiteResponse {
	return site.SiteResponse{
		ID:      s.ID,
		Name:    s.Name,
		Address: s.Address,
	}
}

func companyIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}
