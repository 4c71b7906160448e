package mapping

import (
	"database/sql"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/SscSPs/access_governance_app/internal/models"
)

// ToModelAccessRequest converts a domain AccessRequest to a model AccessRequest
func ToModelAccessRequest(d domain.AccessRequest) models.AccessRequest {
	m := models.AccessRequest{
		RequestID:       d.ID,
		EmployeeID:      d.UserID,
		UserName:        d.UserName,
		UserEmail:       d.UserEmail,
		UserAvatarURL:   d.UserAvatarURL,
		ApplicationID:   d.ApplicationID,
		ApplicationName: d.ApplicationName,
		ApplicationIcon: d.ApplicationIcon,
		RequestedRole:   d.RequestedRole,
		Justification:   toNullString(d.Justification),
		RequestDate:     d.RequestDate,
		Status:          string(d.Status),
		Reason:          toNullString(d.Reason),
		DecidedBy:       toNullString(d.DecidedBy),
	}
	if d.DecidedAt != nil {
		m.DecidedAt = sql.NullTime{Time: *d.DecidedAt, Valid: true}
	}
	return m
}

// ToDomainAccessRequest converts a model AccessRequest to a domain AccessRequest
func ToDomainAccessRequest(m models.AccessRequest) domain.AccessRequest {
	d := domain.AccessRequest{
		ID:              m.RequestID,
		UserID:          m.EmployeeID,
		UserName:        m.UserName,
		UserEmail:       m.UserEmail,
		UserAvatarURL:   m.UserAvatarURL,
		ApplicationID:   m.ApplicationID,
		ApplicationName: m.ApplicationName,
		ApplicationIcon: m.ApplicationIcon,
		RequestedRole:   m.RequestedRole,
		Justification:   fromNullString(m.Justification),
		RequestDate:     m.RequestDate.UTC(),
		Status:          domain.AccessRequestStatus(m.Status),
		Reason:          fromNullString(m.Reason),
		DecidedBy:       fromNullString(m.DecidedBy),
	}
	if m.DecidedAt.Valid {
		t := m.DecidedAt.Time.UTC()
		d.DecidedAt = &t
	}
	return d
}

// ToDomainAccessRequestSlice converts a slice of model AccessRequests to a slice of domain AccessRequests
func ToDomainAccessRequestSlice(ms []models.AccessRequest) []domain.AccessRequest {
	ds := make([]domain.AccessRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccessRequest(m)
	}
	return ds
}
