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

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for voucher data.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

const voucherSelect = `
	SELECT v.voucher_id, v.tenant_id, v.uploaded_by, v.image_path, v.raw_text,
		v.amount, v.date, v.description, v.phone, v.address, v.postal_code,
		v.company_id, v.status,
		v.created_at, v.created_by, v.last_updated_at, v.last_updated_by
	FROM vouchers v
`

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var v domain.Voucher
	err := row.Scan(
		&v.VoucherID, &v.TenantID, &v.UploadedBy, &v.ImagePath, &v.RawText,
		&v.Amount, &v.Date, &v.Description, &v.Phone, &v.Address, &v.PostalCode,
		&v.CompanyID, &v.Status,
		&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan voucher row", err)
	}
	return &v, nil
}

func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	return scanVoucher(r.db(ctx).QueryRow(ctx, voucherSelect+` WHERE v.voucher_id = $1;`, voucherID))
}

func (r *PgxVoucherRepository) ListVouchersByTenant(ctx context.Context, tenantID string, status *domain.VoucherStatus) ([]domain.Voucher, error) {
	query := voucherSelect + ` WHERE v.tenant_id = $1`
	args := []any{tenantID}
	if status != nil {
		query += ` AND v.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY v.created_at DESC;`

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vouchers", err)
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating voucher rows", err)
	}
	return vouchers, nil
}

func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	query := `
		INSERT INTO vouchers (
			voucher_id, tenant_id, uploaded_by, image_path, raw_text,
			amount, date, description, phone, address, postal_code,
			company_id, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		voucher.VoucherID, voucher.TenantID, voucher.UploadedBy, voucher.ImagePath, voucher.RawText,
		voucher.Amount, voucher.Date, voucher.Description, voucher.Phone, voucher.Address, voucher.PostalCode,
		voucher.CompanyID, voucher.Status,
		voucher.CreatedAt, voucher.CreatedBy, voucher.LastUpdatedAt, voucher.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save voucher "+voucher.VoucherID, err)
	}
	return nil
}

func (r *PgxVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	query := `
		UPDATE vouchers
		SET raw_text = $2, amount = $3, date = $4, description = $5,
			phone = $6, address = $7, postal_code = $8, company_id = $9, status = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE voucher_id = $1;
	`
	result, err := r.db(ctx).Exec(ctx, query,
		voucher.VoucherID, voucher.RawText, voucher.Amount, voucher.Date, voucher.Description,
		voucher.Phone, voucher.Address, voucher.PostalCode, voucher.CompanyID, voucher.Status,
		voucher.LastUpdatedAt, voucher.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update voucher "+voucher.VoucherID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxVoucherRepository) DeleteVoucher(ctx context.Context, voucherID string) error {
	result, err := r.db(ctx).Exec(ctx, `DELETE FROM vouchers WHERE voucher_id = $1;`, voucherID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete voucher "+voucherID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
