package repositories

import (
	"context"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// EmployeeReader defines read operations for employee accounts
type EmployeeReader interface {
	// FindEmployeeByID retrieves an employee by its ID.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByLoginID retrieves an employee by login ID within a tenant.
	FindEmployeeByLoginID(ctx context.Context, tenantID, loginID string) (*domain.Employee, error)

	// ListEmployeesByTenant retrieves all employees of a tenant.
	ListEmployeesByTenant(ctx context.Context, tenantID string) ([]domain.Employee, error)

	// ListEmployeesByStore retrieves the employees assigned to a store.
	ListEmployeesByStore(ctx context.Context, storeID string) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employee accounts
type EmployeeWriter interface {
	// SaveEmployee persists a new employee and its store assignments.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployee updates a stored employee, replacing store assignments.
	UpdateEmployee(ctx context.Context, employee domain.Employee) error

	// DeleteEmployee removes an employee and its store assignments.
	DeleteEmployee(ctx context.Context, employeeID string) error
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
