package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewCompanyService creates a new company service with the provided dependencies
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo, journalRepo: journalRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// GetCompany retrieves a company the actor may see
func (s *companyService) GetCompany(ctx context.Context, actor domain.Actor, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company", slog.String("company_id", companyID))
		}
		return nil, err
	}
	if err := requireVoucherAccess(actor, company.TenantID); err != nil {
		return nil, err
	}
	return company, nil
}

// ListCompanies retrieves all companies known to the tenant
func (s *companyService) ListCompanies(ctx context.Context, actor domain.Actor, tenantID string) ([]domain.Company, error) {
	if err := requireVoucherAccess(actor, tenantID); err != nil {
		return nil, err
	}
	companies, err := s.companyRepo.ListCompaniesByTenant(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies", slog.String("tenant_id", tenantID))
		return nil, err
	}
	if companies == nil {
		companies = []domain.Company{}
	}
	return companies, nil
}

// CreateCompany registers a counter-party for the tenant
func (s *companyService) CreateCompany(ctx context.Context, actor domain.Actor, company domain.Company) (*domain.Company, error) {
	if err := requireVoucherAccess(actor, company.TenantID); err != nil {
		return nil, err
	}
	if company.Name == "" {
		return nil, apperrors.NewValidationFailedError("company name is required")
	}

	now := time.Now()
	company.CompanyID = uuid.NewString()
	company.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.ID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.ID,
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("name", company.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Company created",
		slog.String("company_id", company.CompanyID),
		slog.String("tenant_id", company.TenantID))
	return &company, nil
}

// UpdateCompany updates a stored company
func (s *companyService) UpdateCompany(ctx context.Context, actor domain.Actor, company domain.Company) (*domain.Company, error) {
	existing, err := s.companyRepo.FindCompanyByID(ctx, company.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := requireVoucherAccess(actor, existing.TenantID); err != nil {
		return nil, err
	}

	if company.Name != "" {
		existing.Name = company.Name
	}
	if company.CorporateNumber != "" {
		existing.CorporateNumber = company.CorporateNumber
	}
	if company.PostalCode != "" {
		existing.PostalCode = company.PostalCode
	}
	if company.Address != "" {
		existing.Address = company.Address
	}
	if company.Phone != "" {
		existing.Phone = company.Phone
	}
	existing.LastUpdatedAt = time.Now()
	existing.LastUpdatedBy = actor.ID

	if err := s.companyRepo.UpdateCompany(ctx, *existing); err != nil {
		s.LogError(ctx, err, "Failed to update company", slog.String("company_id", company.CompanyID))
		return nil, err
	}
	return existing, nil
}

// DeleteCompany removes a company not referenced by journal entries
func (s *companyService) DeleteCompany(ctx context.Context, actor domain.Actor, companyID string) error {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return err
	}
	if err := requireVoucherAccess(actor, company.TenantID); err != nil {
		return err
	}

	if err := s.companyRepo.DeleteCompany(ctx, companyID); err != nil {
		s.LogError(ctx, err, "Failed to delete company", slog.String("company_id", companyID))
		return err
	}

	s.LogInfo(ctx, "Company deleted",
		slog.String("company_id", companyID),
		slog.String("deleted_by", actor.ID))
	return nil
}
