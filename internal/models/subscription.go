package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription is a row of the subscriptions table.
type Subscription struct {
	SubscriptionID string          `db:"subscription_id"`
	ApplicationID  string          `db:"application_id"`
	AppName        string          `db:"app_name"`
	Icon           string          `db:"icon"`
	CostPerSeat    decimal.Decimal `db:"cost_per_seat"`
	Currency       string          `db:"currency"`
	BillingCycle   string          `db:"billing_cycle"`
	TotalSeats     int64           `db:"total_seats"`
	ActiveSeats    int64           `db:"active_seats"`
	LastUpdated    time.Time       `db:"last_updated"`
}
