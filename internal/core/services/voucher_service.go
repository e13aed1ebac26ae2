package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keiri-app/keiri-backend/internal/adapters/ocr"
	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
)

// voucherService implements the VoucherSvcFacade interface. It owns the
// capture pipeline: text recognition, AI cleanup, field extraction and
// counter-party matching. Each AI step degrades gracefully to its input.
type voucherService struct {
	BaseService
	voucherRepo portsrepo.VoucherRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
	tenantRepo  portsrepo.TenantRepositoryFacade
	extractor   portssvc.TextExtractor
	locator     portssvc.CompanyLocator // optional
	assist      aiAssist
}

// NewVoucherService creates a new voucher service with the provided dependencies
func NewVoucherService(
	voucherRepo portsrepo.VoucherRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
	tenantRepo portsrepo.TenantRepositoryFacade,
	extractor portssvc.TextExtractor,
	completer portssvc.TextCompleter,
	locator portssvc.CompanyLocator,
) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo: voucherRepo,
		companyRepo: companyRepo,
		tenantRepo:  tenantRepo,
		extractor:   extractor,
		locator:     locator,
		assist:      aiAssist{completer: completer},
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// requireVoucherAccess allows any account of the voucher's tenant plus system admins.
func requireVoucherAccess(actor domain.Actor, tenantID string) error {
	if actor.Tier == domain.TierSystem {
		return nil
	}
	if actor.TenantID == tenantID {
		return nil
	}
	return fmt.Errorf("%w: no access to this tenant's vouchers", apperrors.ErrForbidden)
}

// IngestVoucher runs the capture pipeline for one receipt image
func (s *voucherService) IngestVoucher(ctx context.Context, actor domain.Actor, tenantID, imagePath, description string) (*domain.Voucher, error) {
	if err := requireVoucherAccess(actor, tenantID); err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rawText, err := s.extractor.ExtractText(ctx, imagePath)
	if err != nil {
		// Recognition failure is not fatal; the voucher is still captured
		// and a bookkeeper fills the fields in by hand.
		s.LogError(ctx, err, "Text recognition failed", slog.String("image", imagePath))
		rawText = ""
	}
	text := s.assist.CorrectOCRText(ctx, tenant.AISettings, rawText)
	fields := ocr.ExtractFields(text)

	now := time.Now()
	voucher := domain.Voucher{
		VoucherID:   uuid.NewString(),
		TenantID:    tenantID,
		UploadedBy:  actor.ID,
		ImagePath:   imagePath,
		RawText:     text,
		Amount:      fields.Amount,
		Date:        fields.Date,
		Description: description,
		PostalCode:  fields.PostalCode,
		Status:      domain.VoucherPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}
	if len(fields.PhoneNumbers) > 0 {
		voucher.Phone = fields.PhoneNumbers[0]
	}
	if len(fields.Addresses) > 0 {
		voucher.Address = fields.Addresses[0]
	}

	if company := s.matchCompany(ctx, tenant, voucher, text); company != nil {
		voucher.CompanyID = &company.CompanyID
	}

	if err := s.voucherRepo.SaveVoucher(ctx, voucher); err != nil {
		s.LogError(ctx, err, "Failed to save voucher", slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.LogInfo(ctx, "Voucher ingested",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("tenant_id", tenantID),
		slog.Bool("company_matched", voucher.CompanyID != nil),
		slog.String("uploaded_by", actor.ID))
	return &voucher, nil
}

// matchCompany resolves the voucher's counter-party. Known companies of the
// tenant are tried first by phone and postal code; when nothing matches and an
// external registry is wired, its candidates are considered and the best one
// is registered as a new company.
func (s *voucherService) matchCompany(ctx context.Context, tenant *domain.Tenant, voucher domain.Voucher, text string) *domain.Company {
	candidates, err := s.companyRepo.SearchCompanies(ctx, tenant.TenantID, voucher.Phone, voucher.PostalCode, "")
	if err != nil {
		s.LogError(ctx, err, "Company search failed", slog.String("tenant_id", tenant.TenantID))
		return nil
	}
	if len(candidates) > 0 {
		return s.assist.SelectBestCompany(ctx, tenant.AISettings, candidates, voucher.Address)
	}

	if s.locator == nil {
		return nil
	}
	// Receipts lead with the issuer name; the first non-empty line is the
	// best guess we have for a registry query.
	name := firstLine(text)
	if name == "" {
		return nil
	}
	name = s.assist.NormalizeCompanyName(ctx, tenant.AISettings, name)

	external, err := s.locator.FindCandidates(ctx, name)
	if err != nil || len(external) == 0 {
		return nil
	}
	best := s.assist.SelectBestCompany(ctx, tenant.AISettings, external, voucher.Address)
	if best == nil {
		return nil
	}

	now := time.Now()
	company := domain.Company{
		CompanyID:       uuid.NewString(),
		TenantID:        tenant.TenantID,
		Name:            best.Name,
		CorporateNumber: best.CorporateNumber,
		PostalCode:      best.PostalCode,
		Address:         best.Address,
		Phone:           voucher.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     voucher.UploadedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: voucher.UploadedBy,
		},
	}
	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to register matched company", slog.String("name", company.Name))
		return nil
	}
	return &company
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// GetVoucher retrieves a voucher the actor may see
func (s *voucherService) GetVoucher(ctx context.Context, actor domain.Actor, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find voucher", slog.String("voucher_id", voucherID))
		}
		return nil, err
	}
	if err := requireVoucherAccess(actor, voucher.TenantID); err != nil {
		return nil, err
	}
	return voucher, nil
}

// ListVouchers retrieves the tenant's vouchers filtered by status
func (s *voucherService) ListVouchers(ctx context.Context, actor domain.Actor, tenantID string, status *domain.VoucherStatus) ([]domain.Voucher, error) {
	if err := requireVoucherAccess(actor, tenantID); err != nil {
		return nil, err
	}
	vouchers, err := s.voucherRepo.ListVouchersByTenant(ctx, tenantID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vouchers", slog.String("tenant_id", tenantID))
		return nil, err
	}
	if vouchers == nil {
		vouchers = []domain.Voucher{}
	}
	return vouchers, nil
}

// UpdateVoucher corrects extracted fields on a pending voucher
func (s *voucherService) UpdateVoucher(ctx context.Context, actor domain.Actor, voucher domain.Voucher) (*domain.Voucher, error) {
	existing, err := s.voucherRepo.FindVoucherByID(ctx, voucher.VoucherID)
	if err != nil {
		return nil, err
	}
	if err := requireVoucherAccess(actor, existing.TenantID); err != nil {
		return nil, err
	}
	if existing.Status != domain.VoucherPending {
		return nil, apperrors.NewConflictError("voucher has already been journalized")
	}

	if !voucher.Amount.IsZero() {
		existing.Amount = voucher.Amount
	}
	if !voucher.Date.IsZero() {
		existing.Date = voucher.Date
	}
	if voucher.Description != "" {
		existing.Description = voucher.Description
	}
	if voucher.CompanyID != nil {
		existing.CompanyID = voucher.CompanyID
	}
	existing.LastUpdatedAt = time.Now()
	existing.LastUpdatedBy = actor.ID

	if err := s.voucherRepo.UpdateVoucher(ctx, *existing); err != nil {
		s.LogError(ctx, err, "Failed to update voucher", slog.String("voucher_id", voucher.VoucherID))
		return nil, err
	}
	return existing, nil
}

// DeleteVoucher removes a voucher that has not been journalized yet
func (s *voucherService) DeleteVoucher(ctx context.Context, actor domain.Actor, voucherID string) error {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return err
	}
	if err := requireVoucherAccess(actor, voucher.TenantID); err != nil {
		return err
	}
	if voucher.Status != domain.VoucherPending {
		return apperrors.NewConflictError("voucher has already been journalized")
	}

	if err := s.voucherRepo.DeleteVoucher(ctx, voucherID); err != nil {
		s.LogError(ctx, err, "Failed to delete voucher", slog.String("voucher_id", voucherID))
		return err
	}

	s.LogInfo(ctx, "Voucher deleted",
		slog.String("voucher_id", voucherID),
		slog.String("deleted_by", actor.ID))
	return nil
}
