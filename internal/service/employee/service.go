package employee

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	hourlyRate, _ := decimal.NewFromString(req.HourlyRate)
	hiredAt, _ := time.Parse("2006-01-02", req.HiredAt)

	emp := employee.Employee{
		CompanyID:   companyID,
		SiteID:      req.SiteID,
		FullName:    req.FullName,
		Email:       req.Email,
		WeeklyHours: req.WeeklyHours,
		HourlyRate:  hourlyRate,
		HiredAt:     hiredAt,
	}

	created, err := s.EmployeeRepository.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(emp), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.SiteID != nil {
		emp.SiteID = req.SiteID
	}
	if req.WeeklyHours != nil {
		emp.WeeklyHours = *req.WeeklyHours
	}
	if req.HourlyRate != nil {
		emp.HourlyRate, _ = decimal.NewFromString(*req.HourlyRate)
	}

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(emp), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return err
	}

	return s.EmployeeRepository.Delete(ctx, id, companyID)
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter, companyID)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:          emp.ID,
		FullName:    emp.FullName,
		Email:       emp.Email,
		SiteID:      emp.SiteID,
		SiteName:    emp.SiteName,
		WeeklyHours: emp.WeeklyHours,
		HourlyRate:  emp.HourlyRate.StringFixed(2),
		HiredAt:     emp.HiredAt.Format("2006-01-02"),
	}
	if !emp.CreatedAt.IsZero() {
		resp.CreatedAt = emp.CreatedAt.Format(time.RFC3339)
	}
	if !emp.UpdatedAt.IsZero() {
		resp.UpdatedAt = emp.UpdatedAt.Format(time.RFC3339)
	}
	return resp
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
