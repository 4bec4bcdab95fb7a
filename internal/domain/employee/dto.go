package employee

import (
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName    string  `json:"full_name"`
	Email       *string `json:"email,omitempty"`
	SiteID      *string `json:"site_id,omitempty"`
	WeeklyHours float64 `json:"weekly_hours"`
	HourlyRate  string  `json:"hourly_rate"`
	HiredAt     string  `json:"hired_at"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.SiteID != nil && !validator.IsValidUUID(*r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id must be a valid UUID",
		})
	}
	if r.WeeklyHours < 0 || r.WeeklyHours > 80 {
		errs = append(errs, validator.ValidationError{
			Field:   "weekly_hours",
			Message: "weekly_hours must be between 0 and 80",
		})
	}
	if validator.IsEmpty(r.HourlyRate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate is required",
		})
	} else if rate, err := decimal.NewFromString(r.HourlyRate); err != nil || rate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be a non-negative decimal number",
		})
	}
	if _, ok := validator.IsValidDate(r.HiredAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hired_at",
			Message: "hired_at must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID          string   `json:"-"`
	FullName    *string  `json:"full_name,omitempty"`
	Email       *string  `json:"email,omitempty"`
	SiteID      *string  `json:"site_id,omitempty"`
	WeeklyHours *float64 `json:"weekly_hours,omitempty"`
	HourlyRate  *string  `json:"hourly_rate,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.SiteID != nil && !validator.IsValidUUID(*r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id must be a valid UUID",
		})
	}
	if r.WeeklyHours != nil && (*r.WeeklyHours < 0 || *r.WeeklyHours > 80) {
		errs = append(errs, validator.ValidationError{
			Field:   "weekly_hours",
			Message: "weekly_hours must be between 0 and 80",
		})
	}
	if r.HourlyRate != nil {
		if rate, err := decimal.NewFromString(*r.HourlyRate); err != nil || rate.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "hourly_rate",
				Message: "hourly_rate must be a non-negative decimal number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	Email       *string `json:"email,omitempty"`
	SiteID      *string `json:"site_id,omitempty"`
	SiteName    *string `json:"site_name,omitempty"`
	WeeklyHours float64 `json:"weekly_hours"`
	HourlyRate  string  `json:"hourly_rate"`
	HiredAt     string  `json:"hired_at"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

type EmployeeFilter struct {
	// Search & Filter
	Name   *string `json:"name,omitempty"`
	SiteID *string `json:"site_id,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // full_name, hired_at
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EmployeeFilter) Validate() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	return nil
}
