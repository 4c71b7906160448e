package services_test

import (
	"context"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockAuditRepository allows failure injection on the audit append.
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) FindAuditEntries(ctx context.Context, query domain.AuditQuery) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, query)
	var entries []domain.AuditEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.AuditEntry)
	}
	return entries, args.Error(1)
}

func (m *MockAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	args := m.Called(ctx)
	var subs []domain.Subscription
	if args.Get(0) != nil {
		subs = args.Get(0).([]domain.Subscription)
	}
	return subs, args.Error(1)
}
