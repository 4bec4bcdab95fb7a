package attendance

import (
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/validator"
)

type GenerateRangeRequest struct {
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	EmployeeID *string `json:"employee_id,omitempty"`
	SiteID     *string `json:"site_id,omitempty"`
	Overwrite  bool    `json:"overwrite"`
}

func (r *GenerateRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be a valid date (YYYY-MM-DD)",
		})
	}
	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be a valid date (YYYY-MM-DD)",
		})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must not be before date_from",
		})
	}
	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
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

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GenerateRangeResponse is always returned in full, even on partial failure.
// Callers must inspect Errors to detect shifts that could not be processed.
type GenerateRangeResponse struct {
	Generated int      `json:"generated"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}

type ConfirmRequest struct {
	ID        string  `json:"-"`
	EntryTime *string `json:"entry_time,omitempty"`
	ExitTime  *string `json:"exit_time,omitempty"`
	Note      *string `json:"note,omitempty"`
}

func (r *ConfirmRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.EntryTime != nil && !validator.IsValidClockTime(*r.EntryTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_time",
			Message: "entry_time must be a valid time (HH:mm)",
		})
	}
	if r.ExitTime != nil && !validator.IsValidClockTime(*r.ExitTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "exit_time",
			Message: "exit_time must be a valid time (HH:mm)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkAbsentRequest struct {
	ID   string  `json:"-"`
	Note *string `json:"note,omitempty"`
}

func (r *MarkAbsentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name,omitempty"`
	Date               string  `json:"date"`
	ShiftID            *string `json:"shift_id,omitempty"`
	EntryTime          *string `json:"entry_time,omitempty"`
	ExitTime           *string `json:"exit_time,omitempty"`
	WorkedHours        float64 `json:"worked_hours"`
	OvertimeHours      float64 `json:"overtime_hours"`
	Status             string  `json:"status"`
	GeneratedFromShift bool    `json:"generated_from_shift"`
	Note               *string `json:"note,omitempty"`
	CreatedAt          string  `json:"created_at,omitempty"`
	UpdatedAt          string  `json:"updated_at,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	SiteID     *string `json:"site_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, status, worked_hours
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: awaiting_confirmation, confirmed, modified, absent",
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
