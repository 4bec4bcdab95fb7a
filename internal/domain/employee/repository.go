package employee

import (
	"context"
)

// EmployeeRepository defines data access for employee records.
// All methods take companyID to prevent cross-company data access.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	Delete(ctx context.Context, id string, companyID string) error
	List(ctx context.Context, filter EmployeeFilter, companyID string) ([]Employee, int64, error)
}
