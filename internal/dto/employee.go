package dto

import (
	"github.com/SscSPs/access_governance_app/internal/core/domain"
)

// CreateEmployeeRequest is the body of POST /employees.
type CreateEmployeeRequest struct {
	Name       string `json:"name" binding:"required" validate:"required"`
	Email      string `json:"email" binding:"required,email" validate:"required,email"`
	Department string `json:"department" binding:"required" validate:"required"`
	Title      string `json:"title" binding:"required" validate:"required"`
}

// AssignRoleRequest sets the directory role label, or the role of one grant
// when ApplicationID is present.
type AssignRoleRequest struct {
	Role          string  `json:"role" binding:"required" validate:"required"`
	ApplicationID *string `json:"applicationId,omitempty"`
}

// ListEmployeesParams defines query parameters for listing employees.
type ListEmployeesParams struct {
	Query string `form:"query"`
}

// EmployeeResponse is the directory row of an employee.
type EmployeeResponse struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Email      string                `json:"email"`
	Department string                `json:"department"`
	Title      string                `json:"title"`
	Status     domain.EmployeeStatus `json:"status"`
	AvatarURL  string                `json:"avatar"`
	LastActive string                `json:"lastActive"`
	Role       *string               `json:"role,omitempty"`
}

// GrantResponse is one application-access grant.
type GrantResponse struct {
	ApplicationID   string  `json:"id"`
	ApplicationName string  `json:"name"`
	ApplicationType string  `json:"type,omitempty"`
	Icon            string  `json:"icon"`
	Role            string  `json:"role"`
	LastUsed        *string `json:"lastUsed,omitempty"`
}

// EmployeeDetailResponse is an employee with grants and profile fields.
type EmployeeDetailResponse struct {
	EmployeeResponse
	JoinDate     *string         `json:"joinDate,omitempty"`
	Manager      *string         `json:"manager,omitempty"`
	Phone        *string         `json:"phone,omitempty"`
	Applications []GrantResponse `json:"applications"`
}

// ListEmployeesResponse wraps the list of employees.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// ToEmployeeResponse converts a domain.Employee to its DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Title:      e.Title,
		Status:     e.Status,
		AvatarURL:  e.AvatarURL,
		LastActive: e.LastActive,
		Role:       e.Role,
	}
}

// ToListEmployeesResponse converts a slice of domain.Employee.
func ToListEmployeesResponse(employees []domain.Employee) ListEmployeesResponse {
	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = ToEmployeeResponse(&employees[i])
	}
	return ListEmployeesResponse{Employees: responses}
}

// ToGrantResponses converts a slice of domain.Grant.
func ToGrantResponses(grants []domain.Grant) []GrantResponse {
	responses := make([]GrantResponse, len(grants))
	for i, g := range grants {
		responses[i] = GrantResponse{
			ApplicationID:   g.ApplicationID,
			ApplicationName: g.ApplicationName,
			ApplicationType: g.ApplicationType,
			Icon:            g.Icon,
			Role:            g.Role,
			LastUsed:        g.LastUsed,
		}
	}
	return responses
}

// ToEmployeeDetailResponse converts a domain.EmployeeDetail to its DTO.
func ToEmployeeDetailResponse(d *domain.EmployeeDetail) EmployeeDetailResponse {
	return EmployeeDetailResponse{
		EmployeeResponse: ToEmployeeResponse(&d.Employee),
		JoinDate:         d.JoinDate,
		Manager:          d.Manager,
		Phone:            d.Phone,
		Applications:     ToGrantResponses(d.Grants),
	}
}

// ListGrantsResponse wraps the grants of one employee.
type ListGrantsResponse struct {
	Applications []GrantResponse `json:"applications"`
}

// ListApplicationsResponse wraps the application catalog.
type ListApplicationsResponse struct {
	Applications []domain.Application `json:"applications"`
}
