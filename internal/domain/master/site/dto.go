package site

import (
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/validator"
)

// Site is a physical work location (sede) shifts can be assigned to.
type Site struct {
	ID        string
	CompanyID string
	Name      string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateSiteRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

func (r *CreateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSiteRequest struct {
	ID      string  `json:"-"`
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (r *UpdateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SiteResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}
