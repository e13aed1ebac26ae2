package dto

import (
	"time"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// CreateEmployeeRequest defines the data needed to create an employee account.
type CreateEmployeeRequest struct {
	LoginID  string   `json:"loginID" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"omitempty,email"`
	Password string   `json:"password" binding:"required,min=8"`
	StoreIDs []string `json:"storeIDs"`
}

// UpdateEmployeeRequest defines the fields allowed for updating an employee.
type UpdateEmployeeRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"omitempty,email"`
	StoreIDs []string `json:"storeIDs"`
}

// ListEmployeesParams defines query parameters for listing employees.
type ListEmployeesParams struct {
	StoreID string `form:"storeID"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID string    `json:"employeeID"`
	TenantID   string    `json:"tenantID"`
	LoginID    string    `json:"loginID"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	StoreIDs   []string  `json:"storeIDs,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToEmployeeResponse converts a domain.Employee to EmployeeResponse DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: e.EmployeeID,
		TenantID:   e.TenantID,
		LoginID:    e.LoginID,
		Name:       e.Name,
		Email:      e.Email,
		StoreIDs:   e.StoreIDs,
		CreatedAt:  e.CreatedAt,
	}
}

// ListEmployeesResponse wraps the list of employees.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// ToListEmployeesResponse converts a slice of domain.Employee to ListEmployeesResponse DTO.
func ToListEmployeesResponse(employees []domain.Employee) ListEmployeesResponse {
	responses := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		responses[i] = ToEmployeeResponse(&e)
	}
	return ListEmployeesResponse{Employees: responses}
}
