package domain_test

import (
	"testing"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSubscription_Stat(t *testing.T) {
	tests := []struct {
		name            string
		sub             domain.Subscription
		wantMonthly     string
		wantWastedSeats int64
		wantWastedCost  string
		wantUtilization int64
		wantBand        domain.UtilizationBand
	}{
		{
			name:            "slack seats",
			sub:             domain.Subscription{CostPerSeat: decimal.NewFromInt(8), TotalSeats: 250, ActiveSeats: 219},
			wantMonthly:     "2000",
			wantWastedSeats: 31,
			wantWastedCost:  "248",
			wantUtilization: 88,
			wantBand:        domain.BandWarning,
		},
		{
			name:            "fully used",
			sub:             domain.Subscription{CostPerSeat: decimal.NewFromInt(15), TotalSeats: 50, ActiveSeats: 50},
			wantMonthly:     "750",
			wantWastedSeats: 0,
			wantWastedCost:  "0",
			wantUtilization: 100,
			wantBand:        domain.BandEfficient,
		},
		{
			name:            "aws console under used",
			sub:             domain.Subscription{CostPerSeat: decimal.NewFromInt(20), TotalSeats: 60, ActiveSeats: 42},
			wantMonthly:     "1200",
			wantWastedSeats: 18,
			wantWastedCost:  "360",
			wantUtilization: 70,
			wantBand:        domain.BandAtRisk,
		},
		{
			name:            "no seats purchased",
			sub:             domain.Subscription{CostPerSeat: decimal.NewFromInt(10)},
			wantMonthly:     "0",
			wantWastedCost:  "0",
			wantUtilization: 0,
			wantBand:        domain.BandAtRisk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sub.Stat()
			assert.Equal(t, tt.wantMonthly, got.MonthlyCost.String())
			assert.Equal(t, tt.wantWastedSeats, got.WastedSeats)
			assert.Equal(t, tt.wantWastedCost, got.WastedCost.String())
			assert.Equal(t, tt.wantUtilization, got.Utilization)
			assert.Equal(t, tt.wantBand, got.Band)
		})
	}
}

func TestBandFor_Thresholds(t *testing.T) {
	assert.Equal(t, domain.BandEfficient, domain.BandFor(90))
	assert.Equal(t, domain.BandWarning, domain.BandFor(89))
	assert.Equal(t, domain.BandWarning, domain.BandFor(75))
	assert.Equal(t, domain.BandAtRisk, domain.BandFor(74))
}

func TestSummarize(t *testing.T) {
	stats := []domain.SubscriptionStat{
		domain.Subscription{CostPerSeat: decimal.NewFromInt(8), TotalSeats: 250, ActiveSeats: 219}.Stat(),
		domain.Subscription{CostPerSeat: decimal.NewFromInt(20), TotalSeats: 60, ActiveSeats: 42}.Stat(),
	}

	sum := domain.Summarize(stats)

	assert.Equal(t, 2, sum.Applications)
	assert.Equal(t, "3200", sum.TotalSpend.String())
	assert.Equal(t, "608", sum.WastedSpend.String())
	assert.Equal(t, "2592", sum.ActiveSpend.String())
	assert.Equal(t, "19", sum.WastePercent.String())
	assert.Equal(t, int64(310), sum.TotalSeats)
	assert.Equal(t, int64(49), sum.UnusedSeats)
	assert.Equal(t, 1, sum.AtRiskApps)
}

func TestSummarize_Empty(t *testing.T) {
	sum := domain.Summarize(nil)

	assert.Equal(t, 0, sum.Applications)
	assert.True(t, sum.TotalSpend.IsZero())
	assert.True(t, sum.WastePercent.IsZero())
	assert.Equal(t, int64(0), sum.SeatUsagePct)
}
