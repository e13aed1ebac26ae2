package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/utils"
)

// employeeService implements the EmployeeSvcFacade interface
type employeeService struct {
	BaseService
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new employee service with the provided dependencies
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.EmployeeSvcFacade {
	return &employeeService{employeeRepo: employeeRepo}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// GetEmployee retrieves an employee the actor may see
func (s *employeeService) GetEmployee(ctx context.Context, actor domain.Actor, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find employee", slog.String("employee_id", employeeID))
		}
		return nil, err
	}
	switch actor.Tier {
	case domain.TierEmployee:
		if !actor.IsSelf(employeeID) {
			return nil, apperrors.ErrForbidden
		}
	case domain.TierSystem:
	default:
		if actor.TenantID != employee.TenantID {
			return nil, apperrors.ErrForbidden
		}
	}
	return employee, nil
}

// ListEmployees retrieves the employees of a tenant, optionally for one store
func (s *employeeService) ListEmployees(ctx context.Context, actor domain.Actor, tenantID string, storeID *string) ([]domain.Employee, error) {
	if err := actor.Authorize(domain.TierSystem, domain.TierTenant, domain.TierStore); err != nil {
		return nil, err
	}
	if actor.Tier != domain.TierSystem && actor.TenantID != tenantID {
		return nil, apperrors.ErrForbidden
	}

	var employees []domain.Employee
	var err error
	if storeID != nil {
		employees, err = s.employeeRepo.ListEmployeesByStore(ctx, *storeID)
	} else {
		employees, err = s.employeeRepo.ListEmployeesByTenant(ctx, tenantID)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list employees", slog.String("tenant_id", tenantID))
		return nil, err
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	return employees, nil
}

// CreateEmployee creates an employee account with store assignments
func (s *employeeService) CreateEmployee(ctx context.Context, actor domain.Actor, employee domain.Employee, password string) (*domain.Employee, error) {
	if err := actor.Authorize(domain.TierSystem, domain.TierTenant, domain.TierStore); err != nil {
		return nil, err
	}
	if actor.Tier != domain.TierSystem && actor.TenantID != employee.TenantID {
		return nil, apperrors.ErrForbidden
	}
	if employee.LoginID == "" || employee.Name == "" {
		return nil, apperrors.NewValidationFailedError("login ID and name are required")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	employee.EmployeeID = uuid.NewString()
	employee.PasswordHash = hash
	employee.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.ID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.ID,
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		s.LogError(ctx, err, "Failed to save employee", slog.String("login_id", employee.LoginID))
		return nil, err
	}

	s.LogInfo(ctx, "Employee created",
		slog.String("employee_id", employee.EmployeeID),
		slog.String("tenant_id", employee.TenantID),
		slog.String("created_by", actor.ID))
	return &employee, nil
}

// UpdateEmployee updates an employee's profile and store assignments
func (s *employeeService) UpdateEmployee(ctx context.Context, actor domain.Actor, employee domain.Employee) (*domain.Employee, error) {
	existing, err := s.employeeRepo.FindEmployeeByID(ctx, employee.EmployeeID)
	if err != nil {
		return nil, err
	}
	if err := actor.Authorize(domain.TierSystem, domain.TierTenant, domain.TierStore); err != nil {
		return nil, err
	}
	if actor.Tier != domain.TierSystem && actor.TenantID != existing.TenantID {
		return nil, apperrors.ErrForbidden
	}

	if employee.Name != "" {
		existing.Name = employee.Name
	}
	if employee.Email != "" {
		existing.Email = employee.Email
	}
	if employee.StoreIDs != nil {
		existing.StoreIDs = employee.StoreIDs
	}
	existing.LastUpdatedAt = time.Now()
	existing.LastUpdatedBy = actor.ID

	if err := s.employeeRepo.UpdateEmployee(ctx, *existing); err != nil {
		s.LogError(ctx, err, "Failed to update employee", slog.String("employee_id", employee.EmployeeID))
		return nil, err
	}
	return existing, nil
}

// DeleteEmployee removes an employee account
func (s *employeeService) DeleteEmployee(ctx context.Context, actor domain.Actor, employeeID string) error {
	existing, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if err := actor.Authorize(domain.TierSystem, domain.TierTenant, domain.TierStore); err != nil {
		return err
	}
	if actor.Tier != domain.TierSystem && actor.TenantID != existing.TenantID {
		return apperrors.ErrForbidden
	}

	if err := s.employeeRepo.DeleteEmployee(ctx, employeeID); err != nil {
		s.LogError(ctx, err, "Failed to delete employee", slog.String("employee_id", employeeID))
		return err
	}

	s.LogInfo(ctx, "Employee deleted",
		slog.String("employee_id", employeeID),
		slog.String("deleted_by", actor.ID))
	return nil
}
