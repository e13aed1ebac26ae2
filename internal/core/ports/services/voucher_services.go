package services

import (
	"context"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// VoucherSvcFacade defines operations on captured receipts
type VoucherSvcFacade interface {
	// IngestVoucher runs the capture pipeline for one receipt image: text
	// extraction, optional AI cleanup, field extraction and counter-party
	// matching. The voucher lands in pending status.
	IngestVoucher(ctx context.Context, actor domain.Actor, tenantID, imagePath, description string) (*domain.Voucher, error)

	// GetVoucher retrieves a voucher the actor may see.
	GetVoucher(ctx context.Context, actor domain.Actor, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves the tenant's vouchers filtered by status.
	ListVouchers(ctx context.Context, actor domain.Actor, tenantID string, status *domain.VoucherStatus) ([]domain.Voucher, error)

	// UpdateVoucher corrects extracted fields on a pending voucher.
	UpdateVoucher(ctx context.Context, actor domain.Actor, voucher domain.Voucher) (*domain.Voucher, error)

	// DeleteVoucher removes a voucher that has not been journalized yet.
	DeleteVoucher(ctx context.Context, actor domain.Actor, voucherID string) error
}

// CompanySvcFacade defines operations on counter-party companies
type CompanySvcFacade interface {
	// GetCompany retrieves a company the actor may see.
	GetCompany(ctx context.Context, actor domain.Actor, companyID string) (*domain.Company, error)

	// ListCompanies retrieves all companies known to the tenant.
	ListCompanies(ctx context.Context, actor domain.Actor, tenantID string) ([]domain.Company, error)

	// CreateCompany registers a counter-party for the tenant.
	CreateCompany(ctx context.Context, actor domain.Actor, company domain.Company) (*domain.Company, error)

	// UpdateCompany updates a stored company.
	UpdateCompany(ctx context.Context, actor domain.Actor, company domain.Company) (*domain.Company, error)

	// DeleteCompany removes a company not referenced by journal entries.
	DeleteCompany(ctx context.Context, actor domain.Actor, companyID string) error
}
