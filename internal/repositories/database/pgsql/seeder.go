package pgsql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/access_governance_app/internal/seed"
	"github.com/SscSPs/access_governance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedIfEmpty loads fixtures into an empty database in one transaction.
// A database that already holds employees is left untouched.
func SeedIfEmpty(ctx context.Context, dbPool *pgxpool.Pool, fixtures *seed.Fixtures, logger *slog.Logger) error {
	base := &BaseRepository{Pool: dbPool}

	var existing int
	if err := dbPool.QueryRow(ctx, `SELECT count(*) FROM employees;`).Scan(&existing); err != nil {
		return fmt.Errorf("failed to check for existing employees: %w", err)
	}
	if existing > 0 {
		logger.Info("Database already seeded", slog.Int("employees", existing))
		return nil
	}

	employees := newPgxEmployeeRepository(dbPool)
	requests := newPgxAccessRequestRepository(dbPool)
	audit := newPgxAuditRepository(dbPool)

	err := base.WithinTx(ctx, func(ctx context.Context) error {
		db := base.db(ctx)
		for _, app := range fixtures.Applications {
			if _, err := db.Exec(ctx,
				`INSERT INTO applications (application_id, name, type, icon) VALUES ($1, $2, $3, $4) ON CONFLICT (application_id) DO NOTHING;`,
				app.ID, app.Name, app.Type, app.Icon,
			); err != nil {
				return fmt.Errorf("failed to seed application %s: %w", app.ID, err)
			}
		}
		for _, e := range fixtures.Employees {
			if err := employees.SaveEmployee(ctx, e); err != nil {
				return err
			}
		}
		for _, g := range fixtures.Grants {
			if err := employees.UpsertGrant(ctx, g); err != nil {
				return err
			}
		}
		for _, req := range fixtures.AccessRequests {
			if err := requests.SaveAccessRequest(ctx, req); err != nil {
				return err
			}
		}
		for _, entry := range fixtures.AuditLog {
			if err := audit.AppendAuditEntry(ctx, entry); err != nil {
				return err
			}
		}
		for _, s := range fixtures.Subscriptions {
			m := mapping.ToModelSubscription(s)
			if _, err := db.Exec(ctx, `
				INSERT INTO subscriptions (subscription_id, application_id, app_name, icon, cost_per_seat, currency,
				                           billing_cycle, total_seats, active_seats, last_updated)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				ON CONFLICT (subscription_id) DO NOTHING;
			`, m.SubscriptionID, m.ApplicationID, m.AppName, m.Icon, m.CostPerSeat, m.Currency,
				m.BillingCycle, m.TotalSeats, m.ActiveSeats, m.LastUpdated); err != nil {
				return fmt.Errorf("failed to seed subscription %s: %w", s.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Database seeded from fixtures",
		slog.Int("employees", len(fixtures.Employees)),
		slog.Int("access_requests", len(fixtures.AccessRequests)),
		slog.Int("audit_entries", len(fixtures.AuditLog)))
	return nil
}
