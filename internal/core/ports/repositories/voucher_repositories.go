package repositories

import (
	"context"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// VoucherReader defines read operations for voucher data
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher by its ID.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// ListVouchersByTenant retrieves vouchers of a tenant filtered by status.
	// A nil status returns all of them.
	ListVouchersByTenant(ctx context.Context, tenantID string, status *domain.VoucherStatus) ([]domain.Voucher, error)
}

// VoucherWriter defines write operations for voucher data
type VoucherWriter interface {
	// SaveVoucher persists a new voucher.
	SaveVoucher(ctx context.Context, voucher domain.Voucher) error

	// UpdateVoucher updates a stored voucher.
	UpdateVoucher(ctx context.Context, voucher domain.Voucher) error

	// DeleteVoucher removes a voucher.
	DeleteVoucher(ctx context.Context, voucherID string) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}

// CompanyReader defines read operations for counter-party companies
type CompanyReader interface {
	// FindCompanyByID retrieves a company by its ID.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompaniesByTenant retrieves all companies known to a tenant.
	ListCompaniesByTenant(ctx context.Context, tenantID string) ([]domain.Company, error)

	// SearchCompanies retrieves the tenant's companies whose phone, postal code
	// or name matches any of the given values.
	SearchCompanies(ctx context.Context, tenantID string, phone, postalCode, name string) ([]domain.Company, error)
}

// CompanyWriter defines write operations for counter-party companies
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// UpdateCompany updates a stored company.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// DeleteCompany removes a company.
	DeleteCompany(ctx context.Context, companyID string) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
