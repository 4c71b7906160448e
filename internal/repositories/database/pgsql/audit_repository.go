package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	"github.com/SscSPs/access_governance_app/internal/models"
	"github.com/SscSPs/access_governance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) FindAuditEntries(ctx context.Context, query domain.AuditQuery) ([]domain.AuditEntry, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if query.Until != nil {
		conditions = append(conditions, "occurred_at <= "+arg(*query.Until))
	}
	if query.Before != nil {
		ts := arg(query.Before.Timestamp)
		id := arg(query.Before.ID)
		conditions = append(conditions, fmt.Sprintf("(occurred_at < %s OR (occurred_at = %s AND entry_id < %s))", ts, ts, id))
	}
	if len(query.Actions) > 0 {
		actions := make([]string, len(query.Actions))
		for i, a := range query.Actions {
			actions[i] = string(a)
		}
		conditions = append(conditions, "action = ANY("+arg(actions)+")")
	}

	sqlQuery := `SELECT entry_id, occurred_at, action, performed_by, target_user, target_app, details FROM audit_log`
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY occurred_at DESC, entry_id DESC"
	if query.Limit > 0 {
		sqlQuery += " LIMIT " + arg(query.Limit)
	}

	rows, err := r.db(ctx).Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		if err := rows.Scan(&m.EntryID, &m.Timestamp, &m.Action, &m.PerformedBy, &m.TargetUser, &m.TargetApp, &m.Details); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		entries = append(entries, mapping.ToDomainAuditEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *PgxAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO audit_log (entry_id, occurred_at, action, performed_by, target_user, target_app, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, m.EntryID, m.Timestamp, m.Action, m.PerformedBy, m.TargetUser, m.TargetApp, m.Details)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("audit entry %s: %w", entry.ID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

type PgxSubscriptionRepository struct {
	BaseRepository
}

func newPgxSubscriptionRepository(db *pgxpool.Pool) portsrepo.SubscriptionReader {
	return &PgxSubscriptionRepository{BaseRepository: BaseRepository{Pool: db}}
}

func (r *PgxSubscriptionRepository) FindSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT subscription_id, application_id, app_name, icon, cost_per_seat, currency,
		       billing_cycle, total_seats, active_seats, last_updated
		FROM subscriptions
		ORDER BY length(subscription_id), subscription_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []domain.Subscription{}
	for rows.Next() {
		var m models.Subscription
		err := rows.Scan(&m.SubscriptionID, &m.ApplicationID, &m.AppName, &m.Icon, &m.CostPerSeat, &m.Currency,
			&m.BillingCycle, &m.TotalSeats, &m.ActiveSeats, &m.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		subs = append(subs, mapping.ToDomainSubscription(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", rows.Err())
	}
	return subs, nil
}
