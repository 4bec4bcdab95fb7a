package postgresql

import (
	"context"
	"fmt"

	site "github.com/gestionale-hr/gestionale-backend-go/internal/domain/master/site"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type siteRepository struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepository{db: db}
}

// Create implements site.SiteRepository.
func (r *siteRepository) Create(ctx context.Context, s site.Site) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	s.ID = uuid.NewString()

	query := `
		INSERT INTO sites (id, company_id, name, address)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, s.ID, s.CompanyID, s.Name, s.Address).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return site.Site{}, fmt.Errorf("failed to create site: %w", err)
	}

	return s, nil
}

// GetByID implements site.SiteRepository.
func (r *siteRepository) GetByID(ctx context.Context, id string, companyID string) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM sites
		WHERE id = $1 AND company_id = $2
	`

	var s site.Site
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site by ID: %w", err)
	}

	return s, nil
}

// Update implements site.SiteRepository.
func (r *siteRepository) Update(ctx context.Context, s site.Site) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sites
		SET name = $1, address = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, s.Name, s.Address, s.ID, s.CompanyID).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return site.ErrSiteNotFound
		}
		return fmt.Errorf("failed to update site: %w", err)
	}

	return nil
}

// Delete implements site.SiteRepository.
func (r *siteRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM sites WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return site.ErrSiteNotFound
	}

	return nil
}

// List implements site.SiteRepository.
func (r *siteRepository) List(ctx context.Context, companyID string) ([]site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM sites
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	defer rows.Close()

	var sites []site.Site
	for rows.Next() {
		var s site.Site
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, s)
	}

	return sites, nil
}
