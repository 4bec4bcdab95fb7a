package postgresql

import (
	"context"
	"fmt"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/company"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

// Create implements company.CompanyRepository.
func (r *companyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	c.ID = uuid.NewString()

	query := `
		INSERT INTO companies (id, name, timezone)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, c.ID, c.Name, c.Timezone).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	return c, nil
}

// GetByID implements company.CompanyRepository.
func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, timezone, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c company.Company
	err := q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Timezone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by ID: %w", err)
	}

	return c, nil
}

// ListIDs implements company.CompanyRepository.
func (r *companyRepository) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM companies ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list company IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
