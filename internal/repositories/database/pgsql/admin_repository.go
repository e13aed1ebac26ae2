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

type PgxAdminRepository struct {
	BaseRepository
}

// newPgxAdminRepository creates a new repository for administrator data.
func newPgxAdminRepository(pool *pgxpool.Pool) portsrepo.AdminRepositoryWithTx {
	return &PgxAdminRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AdminRepositoryWithTx = (*PgxAdminRepository)(nil)

const adminColumns = `
	a.admin_id, a.login_id, a.name, a.email, a.password_hash, a.tier, a.is_active,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
`

const inScopeTxAttempts = 3

// InScopeTx runs fn inside a serializable transaction. Serialization
// conflicts are retried a few times; owner uniqueness relies on this plus
// the partial unique index on admin_grants.
func (r *PgxAdminRepository) InScopeTx(ctx context.Context, scope domain.Scope, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < inScopeTxAttempts; attempt++ {
		tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
		if err != nil {
			return apperrors.NewAppError(500, "failed to begin scoped transaction", err)
		}

		err = fn(withTx(ctx, tx))
		if err == nil {
			err = tx.Commit(ctx)
			if err == nil {
				return nil
			}
		}
		_ = tx.Rollback(ctx)

		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}
	return apperrors.NewAppError(500, "scoped transaction kept conflicting for "+scope.Key(), lastErr)
}

func (r *PgxAdminRepository) scanAdmin(row pgx.Row) (*domain.Administrator, error) {
	var a domain.Administrator
	err := row.Scan(
		&a.AdminID, &a.LoginID, &a.Name, &a.Email, &a.PasswordHash, &a.Tier, &a.IsActive,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan administrator row", err)
	}
	return &a, nil
}

func (r *PgxAdminRepository) FindAdminByID(ctx context.Context, adminID string) (*domain.Administrator, error) {
	query := `SELECT ` + adminColumns + ` FROM administrators a WHERE a.admin_id = $1;`
	return r.scanAdmin(r.db(ctx).QueryRow(ctx, query, adminID))
}

func (r *PgxAdminRepository) FindAdminByLoginID(ctx context.Context, tier domain.Tier, loginID string) (*domain.Administrator, error) {
	query := `SELECT ` + adminColumns + ` FROM administrators a WHERE a.tier = $1 AND a.login_id = $2;`
	return r.scanAdmin(r.db(ctx).QueryRow(ctx, query, tier, loginID))
}

func (r *PgxAdminRepository) SaveAdmin(ctx context.Context, admin domain.Administrator) error {
	query := `
		INSERT INTO administrators (
			admin_id, login_id, name, email, password_hash, tier, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		admin.AdminID, admin.LoginID, admin.Name, admin.Email, admin.PasswordHash,
		admin.Tier, admin.IsActive,
		admin.CreatedAt, admin.CreatedBy, admin.LastUpdatedAt, admin.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewFieldConflictError("login_id", admin.LoginID)
		}
		return apperrors.NewAppError(500, "failed to save administrator "+admin.AdminID, err)
	}
	return nil
}

func (r *PgxAdminRepository) UpdateAdmin(ctx context.Context, admin domain.Administrator) error {
	query := `
		UPDATE administrators
		SET name = $2, email = $3, password_hash = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE admin_id = $1;
	`
	result, err := r.db(ctx).Exec(ctx, query,
		admin.AdminID, admin.Name, admin.Email, admin.PasswordHash, admin.IsActive,
		admin.LastUpdatedAt, admin.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update administrator "+admin.AdminID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAdminRepository) DeleteAdmin(ctx context.Context, adminID string) error {
	// Grants cascade via the foreign key.
	result, err := r.db(ctx).Exec(ctx, `DELETE FROM administrators WHERE admin_id = $1;`, adminID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete administrator "+adminID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAdminRepository) SaveGrant(ctx context.Context, grant domain.AdminGrant) error {
	query := `
		INSERT INTO admin_grants (admin_id, tier, tenant_id, store_id, is_owner, can_manage_admins, granted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		grant.AdminID, grant.Scope.Tier, grant.Scope.TenantID, grant.Scope.StoreID,
		grant.IsOwner, grant.CanManageAdmins, grant.GrantedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("grant already exists in scope " + grant.Scope.Key())
		}
		return apperrors.NewAppError(500, "failed to save grant for "+grant.AdminID, err)
	}
	return nil
}

const grantSelect = `
	SELECT g.admin_id, a.name, g.tier, g.tenant_id, g.store_id, g.is_owner, g.can_manage_admins, g.granted_at
	FROM admin_grants g
	JOIN administrators a ON a.admin_id = g.admin_id
`

func scanGrant(row pgx.Row) (*domain.AdminGrant, error) {
	var g domain.AdminGrant
	err := row.Scan(
		&g.AdminID, &g.AdminName,
		&g.Scope.Tier, &g.Scope.TenantID, &g.Scope.StoreID,
		&g.IsOwner, &g.CanManageAdmins, &g.GrantedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan grant row", err)
	}
	return &g, nil
}

func (r *PgxAdminRepository) collectGrants(ctx context.Context, filter string, args ...any) ([]domain.AdminGrant, error) {
	rows, err := r.db(ctx).Query(ctx, grantSelect+filter, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query grants", err)
	}
	defer rows.Close()

	var grants []domain.AdminGrant
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		grants = append(grants, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating grant rows", err)
	}
	return grants, nil
}

func (r *PgxAdminRepository) FindGrant(ctx context.Context, adminID string, scope domain.Scope) (*domain.AdminGrant, error) {
	query := grantSelect + ` WHERE g.admin_id = $1 AND g.tier = $2 AND g.tenant_id = $3 AND g.store_id = $4;`
	return scanGrant(r.db(ctx).QueryRow(ctx, query, adminID, scope.Tier, scope.TenantID, scope.StoreID))
}

func (r *PgxAdminRepository) ListGrantsByScope(ctx context.Context, scope domain.Scope) ([]domain.AdminGrant, error) {
	filter := ` WHERE g.tier = $1 AND g.tenant_id = $2 AND g.store_id = $3
		ORDER BY g.is_owner DESC, g.granted_at ASC;`
	return r.collectGrants(ctx, filter, scope.Tier, scope.TenantID, scope.StoreID)
}

func (r *PgxAdminRepository) ListGrantsByAdmin(ctx context.Context, adminID string) ([]domain.AdminGrant, error) {
	filter := ` WHERE g.admin_id = $1 ORDER BY g.granted_at ASC;`
	return r.collectGrants(ctx, filter, adminID)
}

func (r *PgxAdminRepository) UpdateGrant(ctx context.Context, grant domain.AdminGrant) error {
	query := `
		UPDATE admin_grants
		SET is_owner = $5, can_manage_admins = $6
		WHERE admin_id = $1 AND tier = $2 AND tenant_id = $3 AND store_id = $4;
	`
	result, err := r.db(ctx).Exec(ctx, query,
		grant.AdminID, grant.Scope.Tier, grant.Scope.TenantID, grant.Scope.StoreID,
		grant.IsOwner, grant.CanManageAdmins,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update grant for "+grant.AdminID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAdminRepository) DeleteGrant(ctx context.Context, adminID string, scope domain.Scope) error {
	query := `DELETE FROM admin_grants WHERE admin_id = $1 AND tier = $2 AND tenant_id = $3 AND store_id = $4;`
	result, err := r.db(ctx).Exec(ctx, query, adminID, scope.Tier, scope.TenantID, scope.StoreID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete grant for "+adminID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAdminRepository) FindOwner(ctx context.Context, scope domain.Scope) (*domain.AdminGrant, error) {
	query := grantSelect + ` WHERE g.tier = $1 AND g.tenant_id = $2 AND g.store_id = $3 AND g.is_owner;`
	return scanGrant(r.db(ctx).QueryRow(ctx, query, scope.Tier, scope.TenantID, scope.StoreID))
}

func (r *PgxAdminRepository) ClearOwnership(ctx context.Context, scope domain.Scope) error {
	// Relinquishing tenant or store ownership also strips the manage flag on
	// that scope. System owners keep theirs after stepping down.
	query := `
		UPDATE admin_grants
		SET is_owner = false,
			can_manage_admins = can_manage_admins AND tier = $4
		WHERE tier = $1 AND tenant_id = $2 AND store_id = $3 AND is_owner;
	`
	if _, err := r.db(ctx).Exec(ctx, query, scope.Tier, scope.TenantID, scope.StoreID, domain.TierSystem); err != nil {
		return apperrors.NewAppError(500, "failed to clear ownership in "+scope.Key(), err)
	}
	return nil
}

func (r *PgxAdminRepository) CountGrantsByAdmin(ctx context.Context, adminID string) (int, error) {
	var count int
	err := r.db(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM admin_grants WHERE admin_id = $1;`, adminID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count grants for "+adminID, err)
	}
	return count, nil
}
