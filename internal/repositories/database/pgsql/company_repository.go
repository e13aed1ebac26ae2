package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for counter-party companies.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companySelect = `
	SELECT c.company_id, c.tenant_id, c.name, c.corporate_number, c.postal_code,
		c.address, c.phone,
		c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
	FROM companies c
`

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.CompanyID, &c.TenantID, &c.Name, &c.CorporateNumber, &c.PostalCode,
		&c.Address, &c.Phone,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan company row", err)
	}
	return &c, nil
}

func (r *PgxCompanyRepository) collectCompanies(ctx context.Context, query string, args ...any) ([]domain.Company, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company rows", err)
	}
	return companies, nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return scanCompany(r.db(ctx).QueryRow(ctx, companySelect+` WHERE c.company_id = $1;`, companyID))
}

func (r *PgxCompanyRepository) ListCompaniesByTenant(ctx context.Context, tenantID string) ([]domain.Company, error) {
	return r.collectCompanies(ctx, companySelect+` WHERE c.tenant_id = $1 ORDER BY c.name;`, tenantID)
}

// SearchCompanies matches by phone, postal code or name. Empty criteria are
// skipped; no criteria at all matches nothing.
func (r *PgxCompanyRepository) SearchCompanies(ctx context.Context, tenantID string, phone, postalCode, name string) ([]domain.Company, error) {
	args := []any{tenantID}
	var conditions []string

	if phone != "" {
		args = append(args, phone)
		conditions = append(conditions, fmt.Sprintf("c.phone = $%d", len(args)))
	}
	if postalCode != "" {
		args = append(args, postalCode)
		conditions = append(conditions, fmt.Sprintf("c.postal_code = $%d", len(args)))
	}
	if name != "" {
		args = append(args, name)
		conditions = append(conditions, fmt.Sprintf("c.name = $%d", len(args)))
	}
	if len(conditions) == 0 {
		return []domain.Company{}, nil
	}

	query := companySelect + ` WHERE c.tenant_id = $1 AND (` +
		strings.Join(conditions, " OR ") + `) ORDER BY c.name;`
	return r.collectCompanies(ctx, query, args...)
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
		INSERT INTO companies (
			company_id, tenant_id, name, corporate_number, postal_code, address, phone,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		company.CompanyID, company.TenantID, company.Name, company.CorporateNumber,
		company.PostalCode, company.Address, company.Phone,
		company.CreatedAt, company.CreatedBy, company.LastUpdatedAt, company.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save company "+company.CompanyID, err)
	}
	return nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	query := `
		UPDATE companies
		SET name = $2, corporate_number = $3, postal_code = $4, address = $5, phone = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE company_id = $1;
	`
	result, err := r.db(ctx).Exec(ctx, query,
		company.CompanyID, company.Name, company.CorporateNumber, company.PostalCode,
		company.Address, company.Phone, company.LastUpdatedAt, company.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update company "+company.CompanyID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCompanyRepository) DeleteCompany(ctx context.Context, companyID string) error {
	result, err := r.db(ctx).Exec(ctx, `DELETE FROM companies WHERE company_id = $1;`, companyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete company "+companyID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
