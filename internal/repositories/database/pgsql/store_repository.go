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

type PgxStoreRepository struct {
	BaseRepository
}

// newPgxStoreRepository creates a new repository for store data.
func newPgxStoreRepository(pool *pgxpool.Pool) portsrepo.StoreRepositoryFacade {
	return &PgxStoreRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.StoreRepositoryFacade = (*PgxStoreRepository)(nil)

const storeSelect = `
	SELECT s.store_id, s.tenant_id, s.name, s.slug, s.is_active,
		s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
	FROM stores s
`

func scanStore(row pgx.Row) (*domain.Store, error) {
	var s domain.Store
	err := row.Scan(
		&s.StoreID, &s.TenantID, &s.Name, &s.Slug, &s.IsActive,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan store row", err)
	}
	return &s, nil
}

func (r *PgxStoreRepository) FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error) {
	return scanStore(r.db(ctx).QueryRow(ctx, storeSelect+` WHERE s.store_id = $1;`, storeID))
}

func (r *PgxStoreRepository) ListStoresByTenant(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Store, error) {
	query := storeSelect + ` WHERE s.tenant_id = $1`
	if !includeInactive {
		query += ` AND s.is_active`
	}
	query += ` ORDER BY s.name;`

	rows, err := r.db(ctx).Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stores", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating store rows", err)
	}
	return stores, nil
}

func (r *PgxStoreRepository) SaveStore(ctx context.Context, store domain.Store) error {
	query := `
		INSERT INTO stores (
			store_id, tenant_id, name, slug, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		store.StoreID, store.TenantID, store.Name, store.Slug, store.IsActive,
		store.CreatedAt, store.CreatedBy, store.LastUpdatedAt, store.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewFieldConflictError("slug", store.Slug)
		}
		return apperrors.NewAppError(500, "failed to save store "+store.StoreID, err)
	}
	return nil
}

func (r *PgxStoreRepository) UpdateStore(ctx context.Context, store domain.Store) error {
	query := `
		UPDATE stores
		SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE store_id = $1;
	`
	result, err := r.db(ctx).Exec(ctx, query,
		store.StoreID, store.Name, store.IsActive, store.LastUpdatedAt, store.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update store "+store.StoreID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxStoreRepository) DeleteStore(ctx context.Context, storeID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM admin_grants WHERE store_id = $1;`, storeID); err != nil {
		return apperrors.NewAppError(500, "failed to delete grants of store "+storeID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM employee_stores WHERE store_id = $1;`, storeID); err != nil {
		return apperrors.NewAppError(500, "failed to delete assignments of store "+storeID, err)
	}
	result, err := tx.Exec(ctx, `DELETE FROM stores WHERE store_id = $1;`, storeID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete store "+storeID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}
