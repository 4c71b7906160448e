package mapping

import (
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/SscSPs/access_governance_app/internal/models"
)

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		EntryID:     d.ID,
		Timestamp:   d.Timestamp,
		Action:      string(d.Action),
		PerformedBy: d.PerformedBy,
		TargetUser:  toNullString(d.TargetUser),
		TargetApp:   toNullString(d.TargetApp),
		Details:     d.Details,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		ID:          m.EntryID,
		Timestamp:   m.Timestamp.UTC(),
		Action:      domain.AuditAction(m.Action),
		PerformedBy: m.PerformedBy,
		TargetUser:  fromNullString(m.TargetUser),
		TargetApp:   fromNullString(m.TargetApp),
		Details:     m.Details,
	}
}

// ToModelSubscription converts a domain Subscription to a model Subscription.
// A malformed LastUpdated date maps to the zero time.
func ToModelSubscription(d domain.Subscription) models.Subscription {
	lastUpdated, _ := time.Parse(time.DateOnly, d.LastUpdated)
	return models.Subscription{
		SubscriptionID: d.ID,
		ApplicationID:  d.AppID,
		AppName:        d.AppName,
		Icon:           d.Icon,
		CostPerSeat:    d.CostPerSeat,
		Currency:       d.Currency,
		BillingCycle:   string(d.BillingCycle),
		TotalSeats:     d.TotalSeats,
		ActiveSeats:    d.ActiveSeats,
		LastUpdated:    lastUpdated,
	}
}

// ToDomainSubscription converts a model Subscription to a domain Subscription
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		ID:           m.SubscriptionID,
		AppID:        m.ApplicationID,
		AppName:      m.AppName,
		Icon:         m.Icon,
		CostPerSeat:  m.CostPerSeat,
		Currency:     m.Currency,
		BillingCycle: domain.BillingCycle(m.BillingCycle),
		TotalSeats:   m.TotalSeats,
		ActiveSeats:  m.ActiveSeats,
		LastUpdated:  m.LastUpdated.Format(time.DateOnly),
	}
}
