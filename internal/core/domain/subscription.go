package domain

import "github.com/shopspring/decimal"

// BillingCycle is how often a subscription is billed.
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// UtilizationBand classifies seat utilization for display.
type UtilizationBand string

const (
	BandEfficient UtilizationBand = "efficient"
	BandWarning   UtilizationBand = "warning"
	BandAtRisk    UtilizationBand = "at-risk"
)

// Utilization thresholds in percent.
const (
	EfficientUtilization = 90
	WarningUtilization   = 75
)

var hundred = decimal.NewFromInt(100)

// BandFor returns the band of a rounded utilization percentage.
func BandFor(utilization int64) UtilizationBand {
	switch {
	case utilization >= EfficientUtilization:
		return BandEfficient
	case utilization >= WarningUtilization:
		return BandWarning
	default:
		return BandAtRisk
	}
}

// Subscription is the read-only cost record of a licensed application.
type Subscription struct {
	ID           string          `json:"id" yaml:"id"`
	AppID        string          `json:"appId" yaml:"appId"`
	AppName      string          `json:"appName" yaml:"appName"`
	Icon         string          `json:"icon" yaml:"icon"`
	CostPerSeat  decimal.Decimal `json:"costPerSeat" yaml:"-"`
	Currency     string          `json:"currency" yaml:"currency"`
	BillingCycle BillingCycle    `json:"billingCycle" yaml:"billingCycle"`
	TotalSeats   int64           `json:"totalSeats" yaml:"totalSeats"`
	ActiveSeats  int64           `json:"activeSeats" yaml:"activeSeats"`
	LastUpdated  string          `json:"lastUpdated" yaml:"lastUpdated"` // YYYY-MM-DD
}

// SubscriptionStat is a subscription with its derived spend figures.
type SubscriptionStat struct {
	Subscription
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
	WastedSeats int64           `json:"wastedSeats"`
	WastedCost  decimal.Decimal `json:"wastedCost"`
	Utilization int64           `json:"utilization"` // Rounded percent
	Band        UtilizationBand `json:"band"`
}

// Stat derives the spend figures of s. Utilization is 0 when no seats were purchased.
func (s Subscription) Stat() SubscriptionStat {
	wasted := s.TotalSeats - s.ActiveSeats
	var utilization int64
	if s.TotalSeats > 0 {
		utilization = decimal.NewFromInt(s.ActiveSeats).
			Mul(hundred).
			Div(decimal.NewFromInt(s.TotalSeats)).
			Round(0).
			IntPart()
	}
	return SubscriptionStat{
		Subscription: s,
		MonthlyCost:  s.CostPerSeat.Mul(decimal.NewFromInt(s.TotalSeats)),
		WastedSeats:  wasted,
		WastedCost:   s.CostPerSeat.Mul(decimal.NewFromInt(wasted)),
		Utilization:  utilization,
		Band:         BandFor(utilization),
	}
}

// SpendSummary aggregates subscription stats.
type SpendSummary struct {
	Applications  int             `json:"applications"`
	TotalSpend    decimal.Decimal `json:"totalMonthlySpend"`
	WastedSpend   decimal.Decimal `json:"wastedSpend"`
	ActiveSpend   decimal.Decimal `json:"activeSpend"`
	WastePercent  decimal.Decimal `json:"wastePercentage"` // One decimal place
	TotalSeats    int64           `json:"totalSeats"`
	ActiveSeats   int64           `json:"activeSeats"`
	UnusedSeats   int64           `json:"unusedSeats"`
	SeatUsagePct  int64           `json:"seatUtilization"`
	EfficientApps int             `json:"efficientApplications"`
	AtRiskApps    int             `json:"atRiskApplications"`
}

// Summarize totals a set of stats. Percentages are 0 when the denominators are.
func Summarize(stats []SubscriptionStat) SpendSummary {
	sum := SpendSummary{
		Applications: len(stats),
		TotalSpend:   decimal.Zero,
		WastedSpend:  decimal.Zero,
		WastePercent: decimal.Zero,
	}
	for _, st := range stats {
		sum.TotalSpend = sum.TotalSpend.Add(st.MonthlyCost)
		sum.WastedSpend = sum.WastedSpend.Add(st.WastedCost)
		sum.TotalSeats += st.TotalSeats
		sum.ActiveSeats += st.ActiveSeats
		switch st.Band {
		case BandEfficient:
			sum.EfficientApps++
		case BandAtRisk:
			sum.AtRiskApps++
		}
	}
	sum.ActiveSpend = sum.TotalSpend.Sub(sum.WastedSpend)
	sum.UnusedSeats = sum.TotalSeats - sum.ActiveSeats
	if sum.TotalSpend.IsPositive() {
		sum.WastePercent = sum.WastedSpend.Mul(hundred).Div(sum.TotalSpend).Round(1)
	}
	if sum.TotalSeats > 0 {
		sum.SeatUsagePct = decimal.NewFromInt(sum.ActiveSeats).Mul(hundred).Div(decimal.NewFromInt(sum.TotalSeats)).Round(0).IntPart()
	}
	return sum
}
