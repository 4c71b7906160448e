package mapping

import (
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/SscSPs/access_governance_app/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:  d.ID,
		Name:        d.Name,
		Email:       d.Email,
		Department:  d.Department,
		Title:       d.Title,
		Status:      string(d.Status),
		AvatarURL:   d.AvatarURL,
		LastActive:  d.LastActive,
		Role:        toNullString(d.Role),
		JoinDate:    toNullString(d.JoinDate),
		Manager:     toNullString(d.Manager),
		Phone:       toNullString(d.Phone),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		ID:          m.EmployeeID,
		Name:        m.Name,
		Email:       m.Email,
		Department:  m.Department,
		Title:       m.Title,
		Status:      domain.EmployeeStatus(m.Status),
		AvatarURL:   m.AvatarURL,
		LastActive:  m.LastActive,
		Role:        fromNullString(m.Role),
		JoinDate:    fromNullString(m.JoinDate),
		Manager:     fromNullString(m.Manager),
		Phone:       fromNullString(m.Phone),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEmployeeSlice converts a slice of model Employees to a slice of domain Employees
func ToDomainEmployeeSlice(ms []models.Employee) []domain.Employee {
	ds := make([]domain.Employee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEmployee(m)
	}
	return ds
}

// ToModelGrant converts a domain Grant to a model Grant
func ToModelGrant(d domain.Grant) models.Grant {
	return models.Grant{
		EmployeeID:      d.EmployeeID,
		ApplicationID:   d.ApplicationID,
		ApplicationName: d.ApplicationName,
		ApplicationType: d.ApplicationType,
		Icon:            d.Icon,
		Role:            d.Role,
		LastUsed:        toNullString(d.LastUsed),
		GrantedAt:       d.GrantedAt,
	}
}

// ToDomainGrant converts a model Grant to a domain Grant
func ToDomainGrant(m models.Grant) domain.Grant {
	return domain.Grant{
		EmployeeID:      m.EmployeeID,
		ApplicationID:   m.ApplicationID,
		ApplicationName: m.ApplicationName,
		ApplicationType: m.ApplicationType,
		Icon:            m.Icon,
		Role:            m.Role,
		LastUsed:        fromNullString(m.LastUsed),
		GrantedAt:       m.GrantedAt,
	}
}

// ToDomainGrantSlice converts a slice of model Grants to a slice of domain Grants
func ToDomainGrantSlice(ms []models.Grant) []domain.Grant {
	ds := make([]domain.Grant, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGrant(m)
	}
	return ds
}

// ToDomainApplication converts a model Application to a domain Application
func ToDomainApplication(m models.Application) domain.Application {
	return domain.Application{ID: m.ApplicationID, Name: m.Name, Type: m.Type, Icon: m.Icon}
}
