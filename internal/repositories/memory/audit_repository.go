package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
)

type auditRepository struct {
	store *Store
}

func newAuditRepository(store *Store) portsrepo.AuditRepositoryFacade {
	return &auditRepository{store: store}
}

var _ portsrepo.AuditRepositoryFacade = (*auditRepository)(nil)

func (r *auditRepository) FindAuditEntries(ctx context.Context, query domain.AuditQuery) ([]domain.AuditEntry, error) {
	r.store.mu.RLock()
	entries := slices.Clone(r.store.audit)
	r.store.mu.RUnlock()

	slices.SortFunc(entries, domain.NewestFirst)
	out := []domain.AuditEntry{}
	for _, e := range entries {
		if !query.Accepts(e) {
			continue
		}
		out = append(out, e)
		if query.Limit > 0 && len(out) == query.Limit {
			break
		}
	}
	return out, nil
}

// AppendAuditEntry adds entry to the log. Inside a unit of work the entry is
// withdrawn again when the unit fails.
func (r *auditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	return r.store.write(ctx, func() (func(), error) {
		if _, exists := r.store.auditIdx[entry.ID]; exists {
			return nil, fmt.Errorf("audit entry %s: %w", entry.ID, apperrors.ErrDuplicate)
		}
		r.store.audit = appendByID(r.store.audit, r.store.auditIdx, entry, auditKey)
		return func() {
			r.store.audit = removeByID(r.store.audit, r.store.auditIdx, entry.ID, auditKey)
		}, nil
	})
}

type subscriptionRepository struct {
	store *Store
}

func newSubscriptionRepository(store *Store) portsrepo.SubscriptionReader {
	return &subscriptionRepository{store: store}
}

func (r *subscriptionRepository) FindSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]domain.Subscription{}, r.store.subscriptions...), nil
}
