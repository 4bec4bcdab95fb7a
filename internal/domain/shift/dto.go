package shift

import (
	"strings"

	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	EmployeeID string  `json:"employee_id"`
	SiteID     *string `json:"site_id,omitempty"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	LunchStart *string `json:"lunch_start,omitempty"`
	LunchEnd   *string `json:"lunch_end,omitempty"`
	Type       string  `json:"type"`
	Note       *string `json:"note,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if r.SiteID != nil && !validator.IsValidUUID(*r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id must be a valid UUID",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}
	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid time (HH:mm)",
		})
	}
	if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid time (HH:mm)",
		})
	}
	if r.LunchStart != nil && !validator.IsValidClockTime(*r.LunchStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "lunch_start",
			Message: "lunch_start must be a valid time (HH:mm)",
		})
	}
	if r.LunchEnd != nil && !validator.IsValidClockTime(*r.LunchEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "lunch_end",
			Message: "lunch_end must be a valid time (HH:mm)",
		})
	}
	if (r.LunchStart == nil) != (r.LunchEnd == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "lunch_start",
			Message: "lunch_start and lunch_end must be provided together",
		})
	}
	if validator.IsEmpty(r.Type) {
		r.Type = string(ShiftTypeRegular)
	} else if !validator.IsInSlice(r.Type, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(ShiftTypeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID         string  `json:"-"`
	SiteID     *string `json:"site_id,omitempty"`
	Date       *string `json:"date,omitempty"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	LunchStart *string `json:"lunch_start,omitempty"`
	LunchEnd   *string `json:"lunch_end,omitempty"`
	Type       *string `json:"type,omitempty"`
	Note       *string `json:"note,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.SiteID != nil && !validator.IsValidUUID(*r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id must be a valid UUID",
		})
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	for field, v := range map[string]*string{
		"start_time":  r.StartTime,
		"end_time":    r.EndTime,
		"lunch_start": r.LunchStart,
		"lunch_end":   r.LunchEnd,
	} {
		if v != nil && !validator.IsValidClockTime(*v) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a valid time (HH:mm)",
			})
		}
	}
	if r.Type != nil && !validator.IsInSlice(*r.Type, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(ShiftTypeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	SiteID       *string `json:"site_id,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	LunchStart   *string `json:"lunch_start,omitempty"`
	LunchEnd     *string `json:"lunch_end,omitempty"`
	Type         string  `json:"type"`
	Note         *string `json:"note,omitempty"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`

	// Attendance reports what happened to the linked attendance record when
	// the shift was created or updated.
	Attendance *string `json:"attendance,omitempty"`
}

type ListShiftResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Shifts     []ShiftResponse `json:"shifts"`
}

type ShiftFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	SiteID     *string `json:"site_id,omitempty"`
	Type       *string `json:"type,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, start_time, type
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *ShiftFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Type != nil && !validator.IsInSlice(*f.Type, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(ShiftTypeValues, ", "),
		})
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
