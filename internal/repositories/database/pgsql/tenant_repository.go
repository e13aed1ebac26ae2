package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
)

type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenant data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

const tenantSelect = `
	SELECT t.tenant_id, t.name, t.slug, t.is_active,
		t.ai_model, t.openai_api_key, t.google_api_key, t.anthropic_api_key,
		t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
	FROM tenants t
`

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var t domain.Tenant
	err := row.Scan(
		&t.TenantID, &t.Name, &t.Slug, &t.IsActive,
		&t.AIModel, &t.OpenAIAPIKey, &t.GoogleAPIKey, &t.AnthropicAPIKey,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan tenant row", err)
	}
	return &t, nil
}

func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return scanTenant(r.db(ctx).QueryRow(ctx, tenantSelect+` WHERE t.tenant_id = $1;`, tenantID))
}

func (r *PgxTenantRepository) FindTenantBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return scanTenant(r.db(ctx).QueryRow(ctx, tenantSelect+` WHERE t.slug = $1;`, slug))
}

func (r *PgxTenantRepository) ListTenants(ctx context.Context, includeInactive bool) ([]domain.Tenant, error) {
	query := tenantSelect
	if !includeInactive {
		query += ` WHERE t.is_active`
	}
	query += ` ORDER BY t.name;`

	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tenants", err)
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tenant rows", err)
	}
	return tenants, nil
}

func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	query := `
		INSERT INTO tenants (
			tenant_id, name, slug, is_active,
			ai_model, openai_api_key, google_api_key, anthropic_api_key,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		tenant.TenantID, tenant.Name, tenant.Slug, tenant.IsActive,
		tenant.AIModel, tenant.OpenAIAPIKey, tenant.GoogleAPIKey, tenant.AnthropicAPIKey,
		tenant.CreatedAt, tenant.CreatedBy, tenant.LastUpdatedAt, tenant.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewFieldConflictError("slug", tenant.Slug)
		}
		return apperrors.NewAppError(500, "failed to save tenant "+tenant.TenantID, err)
	}
	return nil
}

func (r *PgxTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, is_active = $3,
			ai_model = $4, openai_api_key = $5, google_api_key = $6, anthropic_api_key = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE tenant_id = $1;
	`
	result, err := r.db(ctx).Exec(ctx, query,
		tenant.TenantID, tenant.Name, tenant.IsActive,
		tenant.AIModel, tenant.OpenAIAPIKey, tenant.GoogleAPIKey, tenant.AnthropicAPIKey,
		tenant.LastUpdatedAt, tenant.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update tenant "+tenant.TenantID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTenantCascade removes the tenant and everything referencing it in one
// transaction. Admin accounts left without any grant are cleaned up too.
func (r *PgxTenantRepository) DeleteTenantCascade(ctx context.Context, tenantID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	scoped := []string{
		`DELETE FROM journal_entries WHERE tenant_id = $1;`,
		`DELETE FROM vouchers WHERE tenant_id = $1;`,
		`DELETE FROM companies WHERE tenant_id = $1;`,
		`DELETE FROM employee_stores es USING employees e
			WHERE es.employee_id = e.employee_id AND e.tenant_id = $1;`,
		`DELETE FROM employees WHERE tenant_id = $1;`,
		`DELETE FROM admin_grants WHERE tenant_id = $1;`,
		`DELETE FROM stores WHERE tenant_id = $1;`,
		`DELETE FROM tenants WHERE tenant_id = $1;`,
	}
	for _, stmt := range scoped {
		if _, err := tx.Exec(ctx, stmt, tenantID); err != nil {
			return apperrors.NewAppError(500, "failed to cascade delete tenant "+tenantID, err)
		}
	}

	// Sweep admin accounts that lost their last grant in this cascade.
	orphanSweep := `
		DELETE FROM administrators a
		WHERE a.tier <> 'system_admin'
		AND NOT EXISTS (SELECT 1 FROM admin_grants g WHERE g.admin_id = a.admin_id);
	`
	if _, err := tx.Exec(ctx, orphanSweep); err != nil {
		return apperrors.NewAppError(500, "failed to sweep orphaned admins for tenant "+tenantID, err)
	}
	return r.Commit(ctx, tx)
}
