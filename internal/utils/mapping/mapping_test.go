package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccessRequestMapping_OptionalFields(t *testing.T) {
	reason := "not needed"
	decider := "Admin User"
	decidedAt := time.Date(2025, 5, 15, 8, 0, 0, 0, time.UTC)
	d := domain.AccessRequest{
		ID:        "req1",
		UserID:    "3",
		Status:    domain.AccessRequestDenied,
		Reason:    &reason,
		DecidedBy: &decider,
		DecidedAt: &decidedAt,
	}

	m := ToModelAccessRequest(d)
	assert.True(t, m.Reason.Valid)
	assert.False(t, m.Justification.Valid)
	assert.Equal(t, "3", m.EmployeeID)

	back := ToDomainAccessRequest(m)
	assert.Nil(t, back.Justification)
	assert.Equal(t, reason, *back.Reason)
	assert.True(t, decidedAt.Equal(*back.DecidedAt))
}

func TestSubscriptionMapping_DateOnly(t *testing.T) {
	d := domain.Subscription{ID: "sub1", CostPerSeat: decimal.NewFromInt(8), LastUpdated: "2025-05-10"}
	m := ToModelSubscription(d)
	assert.Equal(t, 2025, m.LastUpdated.Year())
	assert.Equal(t, "2025-05-10", ToDomainSubscription(m).LastUpdated)
}

func TestEmployeeMapping_NullableProfile(t *testing.T) {
	manager := "Robert Johnson"
	m := ToModelEmployee(domain.Employee{ID: "1", Status: domain.EmployeeActive, Manager: &manager})
	assert.True(t, m.Manager.Valid)
	assert.False(t, m.Phone.Valid)

	back := ToDomainEmployee(m)
	assert.Equal(t, domain.EmployeeActive, back.Status)
	assert.Nil(t, back.Phone)
	assert.Equal(t, manager, *back.Manager)
}
