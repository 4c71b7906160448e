package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	"github.com/SscSPs/access_governance_app/internal/models"
	"github.com/SscSPs/access_governance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(db *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxEmployeeRepository implements portsrepo.EmployeeRepositoryFacade
var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const (
	selectEmployeeFields = `
		employee_id, name, email, department, title, status, avatar_url, last_active,
		role, join_date, manager, phone,
		created_at, created_by, last_updated_at, last_updated_by
	`

	selectGrantFields = `
		employee_id, application_id, application_name, application_type, icon, role, last_used, granted_at
	`
)

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.Name,
		&m.Email,
		&m.Department,
		&m.Title,
		&m.Status,
		&m.AvatarURL,
		&m.LastActive,
		&m.Role,
		&m.JoinDate,
		&m.Manager,
		&m.Phone,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanGrant(row pgx.Row) (models.Grant, error) {
	var m models.Grant
	err := row.Scan(
		&m.EmployeeID,
		&m.ApplicationID,
		&m.ApplicationName,
		&m.ApplicationType,
		&m.Icon,
		&m.Role,
		&m.LastUsed,
		&m.GrantedAt,
	)
	return m, err
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + selectEmployeeFields + ` FROM employees WHERE employee_id = $1;`
	m, err := scanEmployee(r.db(ctx).QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by ID %s: %w", employeeID, err)
	}
	emp := mapping.ToDomainEmployee(m)
	return &emp, nil
}

func (r *PgxEmployeeRepository) FindEmployees(ctx context.Context, query string) ([]domain.Employee, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	sqlQuery := `
		SELECT ` + selectEmployeeFields + `
		FROM employees
		WHERE $1 = ''
		   OR position($1 in lower(name)) > 0
		   OR position($1 in lower(email)) > 0
		   OR position($1 in lower(department)) > 0
		   OR position($1 in lower(title)) > 0
		ORDER BY directory_order;
	`
	rows, err := r.db(ctx).Query(ctx, sqlQuery, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	modelEmployees := []models.Employee{}
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		modelEmployees = append(modelEmployees, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", rows.Err())
	}
	return mapping.ToDomainEmployeeSlice(modelEmployees), nil
}

func (r *PgxEmployeeRepository) CountEmployeesByStatus(ctx context.Context) (map[domain.EmployeeStatus]int, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT status, count(*) FROM employees GROUP BY status;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.EmployeeStatus]int, 3)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan employee count: %w", err)
		}
		counts[domain.EmployeeStatus(status)] = n
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employee counts: %w", rows.Err())
	}
	return counts, nil
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		INSERT INTO employees (
			employee_id, name, email, department, title, status, avatar_url, last_active,
			role, join_date, manager, phone,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.EmployeeID, m.Name, m.Email, m.Department, m.Title, m.Status, m.AvatarURL, m.LastActive,
		m.Role, m.JoinDate, m.Manager, m.Phone,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("employee %s: %w", employee.ID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		UPDATE employees
		SET name = $1, email = $2, department = $3, title = $4, status = $5, avatar_url = $6,
		    last_active = $7, role = $8, join_date = $9, manager = $10, phone = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE employee_id = $14;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.Name, m.Email, m.Department, m.Title, m.Status, m.AvatarURL,
		m.LastActive, m.Role, m.JoinDate, m.Manager, m.Phone,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.EmployeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update employee query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s: %w", employee.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEmployeeRepository) FindGrantsByEmployee(ctx context.Context, employeeID string) ([]domain.Grant, error) {
	query := `SELECT ` + selectGrantFields + ` FROM grants WHERE employee_id = $1 ORDER BY grant_order;`
	rows, err := r.db(ctx).Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query grants: %w", err)
	}
	defer rows.Close()

	modelGrants := []models.Grant{}
	for rows.Next() {
		m, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grant row: %w", err)
		}
		modelGrants = append(modelGrants, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating grant rows: %w", rows.Err())
	}
	return mapping.ToDomainGrantSlice(modelGrants), nil
}

func (r *PgxEmployeeRepository) FindGrant(ctx context.Context, employeeID, applicationID string) (*domain.Grant, error) {
	query := `SELECT ` + selectGrantFields + ` FROM grants WHERE employee_id = $1 AND application_id = $2;`
	m, err := scanGrant(r.db(ctx).QueryRow(ctx, query, employeeID, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find grant: %w", err)
	}
	g := mapping.ToDomainGrant(m)
	return &g, nil
}

func (r *PgxEmployeeRepository) CountGrantedApplications(ctx context.Context) (int, error) {
	var n int
	if err := r.db(ctx).QueryRow(ctx, `SELECT count(DISTINCT application_id) FROM grants;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count granted applications: %w", err)
	}
	return n, nil
}

func (r *PgxEmployeeRepository) UpsertGrant(ctx context.Context, grant domain.Grant) error {
	m := mapping.ToModelGrant(grant)
	query := `
		INSERT INTO grants (employee_id, application_id, application_name, application_type, icon, role, last_used, granted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, application_id) DO UPDATE SET
			application_name = EXCLUDED.application_name,
			application_type = EXCLUDED.application_type,
			icon = EXCLUDED.icon,
			role = EXCLUDED.role,
			last_used = EXCLUDED.last_used,
			granted_at = EXCLUDED.granted_at;
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.EmployeeID, m.ApplicationID, m.ApplicationName, m.ApplicationType, m.Icon, m.Role, m.LastUsed, m.GrantedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert grant: %w", err)
	}
	return nil
}

func (r *PgxEmployeeRepository) DeleteGrant(ctx context.Context, employeeID, applicationID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM grants WHERE employee_id = $1 AND application_id = $2;`, employeeID, applicationID)
	if err != nil {
		return fmt.Errorf("failed to delete grant: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("grant %s/%s: %w", employeeID, applicationID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEmployeeRepository) DeleteGrantsByEmployee(ctx context.Context, employeeID string) (int, error) {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM grants WHERE employee_id = $1;`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete grants of employee %s: %w", employeeID, err)
	}
	return int(cmdTag.RowsAffected()), nil
}

type PgxApplicationRepository struct {
	BaseRepository
}

func newPgxApplicationRepository(db *pgxpool.Pool) portsrepo.ApplicationReader {
	return &PgxApplicationRepository{BaseRepository: BaseRepository{Pool: db}}
}

func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	var m models.Application
	err := r.db(ctx).QueryRow(ctx,
		`SELECT application_id, name, type, icon FROM applications WHERE application_id = $1;`, applicationID,
	).Scan(&m.ApplicationID, &m.Name, &m.Type, &m.Icon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find application %s: %w", applicationID, err)
	}
	app := mapping.ToDomainApplication(m)
	return &app, nil
}

func (r *PgxApplicationRepository) FindApplications(ctx context.Context) ([]domain.Application, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT application_id, name, type, icon FROM applications ORDER BY length(application_id), application_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		var m models.Application
		if err := rows.Scan(&m.ApplicationID, &m.Name, &m.Type, &m.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, mapping.ToDomainApplication(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", rows.Err())
	}
	return apps, nil
}
