package repositories

import (
	"context"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
)

// AuditReader defines read operations for the audit log.
type AuditReader interface {
	// FindAuditEntries returns the entries accepted by query, newest first.
	FindAuditEntries(ctx context.Context, query domain.AuditQuery) ([]domain.AuditEntry, error)
}

// AuditWriter appends to the audit log. There is no update or delete.
type AuditWriter interface {
	AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRepositoryFacade combines all audit repository interfaces.
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}

// SubscriptionReader reads subscription cost records.
type SubscriptionReader interface {
	FindSubscriptions(ctx context.Context) ([]domain.Subscription, error)
}
