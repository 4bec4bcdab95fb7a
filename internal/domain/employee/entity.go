package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a staff record within one company. WeeklyHours is the
// contracted weekly working time; the attendance deriver divides it by five
// to obtain the daily threshold above which overtime starts.
type Employee struct {
	ID          string
	CompanyID   string
	UserID      *string
	SiteID      *string
	FullName    string
	Email       *string
	WeeklyHours float64
	HourlyRate  decimal.Decimal
	HiredAt     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	SiteName *string
}
