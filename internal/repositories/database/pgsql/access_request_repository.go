package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	"github.com/SscSPs/access_governance_app/internal/models"
	"github.com/SscSPs/access_governance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccessRequestRepository struct {
	BaseRepository
}

func newPgxAccessRequestRepository(db *pgxpool.Pool) portsrepo.AccessRequestRepositoryFacade {
	return &PgxAccessRequestRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.AccessRequestRepositoryFacade = (*PgxAccessRequestRepository)(nil)

const selectAccessRequestFields = `
	request_id, employee_id, user_name, user_email, user_avatar_url,
	application_id, application_name, application_icon, requested_role, justification,
	request_date, status, reason, decided_by, decided_at
`

func scanAccessRequest(row pgx.Row) (models.AccessRequest, error) {
	var m models.AccessRequest
	err := row.Scan(
		&m.RequestID,
		&m.EmployeeID,
		&m.UserName,
		&m.UserEmail,
		&m.UserAvatarURL,
		&m.ApplicationID,
		&m.ApplicationName,
		&m.ApplicationIcon,
		&m.RequestedRole,
		&m.Justification,
		&m.RequestDate,
		&m.Status,
		&m.Reason,
		&m.DecidedBy,
		&m.DecidedAt,
	)
	return m, err
}

func (r *PgxAccessRequestRepository) FindAccessRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	query := `SELECT ` + selectAccessRequestFields + ` FROM access_requests WHERE request_id = $1;`
	m, err := scanAccessRequest(r.db(ctx).QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find access request %s: %w", requestID, err)
	}
	req := mapping.ToDomainAccessRequest(m)
	return &req, nil
}

func (r *PgxAccessRequestRepository) FindAccessRequests(ctx context.Context, filter domain.AccessRequestFilter) ([]domain.AccessRequest, error) {
	var statusClause string
	switch filter.View {
	case domain.AccessRequestViewPending:
		statusClause = `status = 'pending'`
	case domain.AccessRequestViewProcessed:
		statusClause = `status <> 'pending'`
	default:
		statusClause = `TRUE`
	}
	query := `
		SELECT ` + selectAccessRequestFields + `
		FROM access_requests
		WHERE ` + statusClause + ` AND ($1::text IS NULL OR employee_id = $1)
		ORDER BY request_date DESC, request_id DESC;
	`
	rows, err := r.db(ctx).Query(ctx, query, filter.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query access requests: %w", err)
	}
	defer rows.Close()

	modelRequests := []models.AccessRequest{}
	for rows.Next() {
		m, err := scanAccessRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access request row: %w", err)
		}
		modelRequests = append(modelRequests, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating access request rows: %w", rows.Err())
	}
	return mapping.ToDomainAccessRequestSlice(modelRequests), nil
}

func (r *PgxAccessRequestRepository) SaveAccessRequest(ctx context.Context, request domain.AccessRequest) error {
	m := mapping.ToModelAccessRequest(request)
	query := `
		INSERT INTO access_requests (` + selectAccessRequestFields + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.RequestID, m.EmployeeID, m.UserName, m.UserEmail, m.UserAvatarURL,
		m.ApplicationID, m.ApplicationName, m.ApplicationIcon, m.RequestedRole, m.Justification,
		m.RequestDate, m.Status, m.Reason, m.DecidedBy, m.DecidedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("access request %s: %w", request.ID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save access request: %w", err)
	}
	return nil
}

// DecideAccessRequest only updates rows that are still pending, so concurrent
// decisions on one request succeed at most once.
func (r *PgxAccessRequestRepository) DecideAccessRequest(ctx context.Context, requestID string, decision domain.AccessRequestDecision) (*domain.AccessRequest, error) {
	query := `
		UPDATE access_requests
		SET status = $1, reason = $2, decided_by = $3, decided_at = $4
		WHERE request_id = $5 AND status = 'pending'
		RETURNING ` + selectAccessRequestFields + `;
	`
	m, err := scanAccessRequest(r.db(ctx).QueryRow(ctx, query,
		string(decision.Outcome), decision.Reason, decision.DecidedBy, decision.DecidedAt, requestID,
	))
	if err == nil {
		req := mapping.ToDomainAccessRequest(m)
		return &req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to decide access request %s: %w", requestID, err)
	}

	// Nothing updated: either the id is unknown or the request was already decided.
	if _, findErr := r.FindAccessRequestByID(ctx, requestID); findErr != nil {
		return nil, findErr
	}
	return nil, apperrors.ErrAlreadyDecided
}
