package services

import (
	"context"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
)

type spendService struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionReader
}

// NewSpendService creates a new SpendService.
func NewSpendService(subscriptionRepo portsrepo.SubscriptionReader) portssvc.SpendSvc {
	return &spendService{subscriptionRepo: subscriptionRepo}
}

var _ portssvc.SpendSvc = (*spendService)(nil)

func (s *spendService) ListSubscriptionStats(ctx context.Context) ([]domain.SubscriptionStat, error) {
	subs, err := s.subscriptionRepo.FindSubscriptions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list subscriptions")
		return nil, err
	}
	stats := make([]domain.SubscriptionStat, len(subs))
	for i, sub := range subs {
		stats[i] = sub.Stat()
	}
	return stats, nil
}

func (s *spendService) Summary(ctx context.Context) (*domain.SpendSummary, error) {
	stats, err := s.ListSubscriptionStats(ctx)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(stats)
	return &summary, nil
}
