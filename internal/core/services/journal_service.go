package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/accounting"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
)

// journalService implements the JournalSvcFacade interface. Reading is open
// to every account of the tenant, employees included; writing needs an
// administrative tier.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	voucherRepo portsrepo.VoucherRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewJournalService creates a new journal service with the provided dependencies
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	voucherRepo portsrepo.VoucherRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		voucherRepo: voucherRepo,
		companyRepo: companyRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func requireJournalRead(actor domain.Actor, tenantID string) error {
	if actor.Tier == domain.TierSystem || actor.TenantID == tenantID {
		return nil
	}
	return fmt.Errorf("%w: no access to this tenant's journal", apperrors.ErrForbidden)
}

func requireJournalWrite(actor domain.Actor, tenantID string) error {
	if err := actor.Authorize(domain.TierSystem, domain.TierTenant, domain.TierStore); err != nil {
		return err
	}
	return requireJournalRead(actor, tenantID)
}

// GetEntry retrieves a journal entry the actor may see
func (s *journalService) GetEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if err := requireJournalRead(actor, entry.TenantID); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves a paginated list of the tenant's journal entries
func (s *journalService) ListEntries(ctx context.Context, actor domain.Actor, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if err := requireJournalRead(actor, tenantID); err != nil {
		return nil, nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	entries, token, err := s.journalRepo.ListEntriesByTenant(ctx, tenantID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("tenant_id", tenantID))
		return nil, nil, err
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, token, nil
}

// ListSubjects returns the chart of accounts, optionally filtered by type
func (s *journalService) ListSubjects(ctx context.Context, subjectType *string) ([]string, error) {
	if subjectType == nil || *subjectType == "" {
		return accounting.Subjects(), nil
	}
	names := accounting.SubjectsByType(accounting.SubjectType(*subjectType))
	if names == nil {
		return nil, apperrors.NewValidationFailedError("unknown subject type")
	}
	return names, nil
}

// GenerateFromVouchers drafts one entry per pending voucher and persists the
// valid ones. Each successful entry commits on its own, so a failure midway
// never takes down the entries already written. Invalid drafts are reported
// and their vouchers stay pending.
func (s *journalService) GenerateFromVouchers(ctx context.Context, actor domain.Actor, tenantID string, voucherIDs []string) (*portssvc.GenerationResult, error) {
	if err := requireJournalWrite(actor, tenantID); err != nil {
		return nil, err
	}

	vouchers, err := s.collectVouchers(ctx, tenantID, voucherIDs)
	if err != nil {
		return nil, err
	}

	names := s.companyNames(ctx, vouchers)
	result := &portssvc.GenerationResult{Skipped: map[string][]string{}}
	now := time.Now()

	for draft := range accounting.BatchDrafts(vouchers, func(v domain.Voucher) string {
		if v.CompanyID == nil {
			return ""
		}
		return names[*v.CompanyID]
	}, "現金") {
		if len(draft.Problems) > 0 {
			result.Skipped[draft.Voucher.VoucherID] = draft.Problems
			s.LogInfo(ctx, "Voucher skipped by validation",
				slog.String("voucher_id", draft.Voucher.VoucherID),
				slog.String("problems", strings.Join(draft.Problems, "; ")))
			continue
		}

		entry := draft.Entry
		entry.EntryID = uuid.NewString()
		entry.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		}
		if err := s.journalRepo.SaveEntryForVoucher(ctx, entry, draft.Voucher.VoucherID); err != nil {
			s.LogError(ctx, err, "Failed to persist generated entry",
				slog.String("voucher_id", draft.Voucher.VoucherID))
			result.Skipped[draft.Voucher.VoucherID] = []string{err.Error()}
			continue
		}
		result.Generated++
	}

	if len(result.Skipped) == 0 {
		result.Skipped = nil
	}
	s.LogInfo(ctx, "Journal generation finished",
		slog.String("tenant_id", tenantID),
		slog.Int("generated", result.Generated),
		slog.Int("skipped", len(result.Skipped)),
		slog.String("generated_by", actor.ID))
	return result, nil
}

// collectVouchers resolves the batch input: explicit IDs, or every pending
// voucher of the tenant when none are given.
func (s *journalService) collectVouchers(ctx context.Context, tenantID string, voucherIDs []string) ([]domain.Voucher, error) {
	if len(voucherIDs) == 0 {
		pending := domain.VoucherPending
		return s.voucherRepo.ListVouchersByTenant(ctx, tenantID, &pending)
	}

	vouchers := make([]domain.Voucher, 0, len(voucherIDs))
	for _, id := range voucherIDs {
		v, err := s.voucherRepo.FindVoucherByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if v.TenantID != tenantID {
			return nil, fmt.Errorf("%w: voucher belongs to another tenant", apperrors.ErrForbidden)
		}
		if v.Status != domain.VoucherPending {
			return nil, apperrors.NewConflictError(fmt.Sprintf("voucher %s is not pending", id))
		}
		vouchers = append(vouchers, *v)
	}
	return vouchers, nil
}

func (s *journalService) companyNames(ctx context.Context, vouchers []domain.Voucher) map[string]string {
	names := map[string]string{}
	for _, v := range vouchers {
		if v.CompanyID == nil {
			continue
		}
		if _, done := names[*v.CompanyID]; done {
			continue
		}
		company, err := s.companyRepo.FindCompanyByID(ctx, *v.CompanyID)
		if err != nil {
			names[*v.CompanyID] = ""
			continue
		}
		names[*v.CompanyID] = company.Name
	}
	return names
}

// CreateEntry persists a manually written entry after validation
func (s *journalService) CreateEntry(ctx context.Context, actor domain.Actor, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	if err := requireJournalWrite(actor, entry.TenantID); err != nil {
		return nil, err
	}
	if problems := accounting.ValidateEntry(entry); len(problems) > 0 {
		return nil, apperrors.NewValidationFailedError(strings.Join(problems, "; "))
	}

	now := time.Now()
	entry.EntryID = uuid.NewString()
	entry.AutoGenerated = false
	entry.Confirmed = false
	entry.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.ID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.ID,
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("tenant_id", entry.TenantID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("created_by", actor.ID))
	return &entry, nil
}

// UpdateEntry updates an unconfirmed entry after validation
func (s *journalService) UpdateEntry(ctx context.Context, actor domain.Actor, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	existing, err := s.journalRepo.FindEntryByID(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	if err := requireJournalWrite(actor, existing.TenantID); err != nil {
		return nil, err
	}
	if existing.Confirmed {
		return nil, apperrors.NewConflictError("confirmed entries are immutable")
	}

	existing.Date = entry.Date
	existing.DebitSubject = entry.DebitSubject
	existing.DebitAmount = entry.DebitAmount
	existing.DebitSubSubject = entry.DebitSubSubject
	existing.CreditSubject = entry.CreditSubject
	existing.CreditAmount = entry.CreditAmount
	existing.CreditSubSubject = entry.CreditSubSubject
	existing.Description = entry.Description
	if problems := accounting.ValidateEntry(*existing); len(problems) > 0 {
		return nil, apperrors.NewValidationFailedError(strings.Join(problems, "; "))
	}
	existing.LastUpdatedAt = time.Now()
	existing.LastUpdatedBy = actor.ID

	if err := s.journalRepo.UpdateEntry(ctx, *existing); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}
	return existing, nil
}

// ConfirmEntry marks an entry as reviewed. One-way.
func (s *journalService) ConfirmEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := requireJournalWrite(actor, entry.TenantID); err != nil {
		return nil, err
	}
	if entry.Confirmed {
		return entry, nil
	}
	if problems := accounting.ValidateEntry(*entry); len(problems) > 0 {
		return nil, apperrors.NewValidationFailedError(strings.Join(problems, "; "))
	}

	entry.Confirmed = true
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = actor.ID

	if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to confirm journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry confirmed",
		slog.String("entry_id", entryID),
		slog.String("confirmed_by", actor.ID))
	return entry, nil
}

// DeleteEntry removes an unconfirmed entry and returns its voucher to pending
func (s *journalService) DeleteEntry(ctx context.Context, actor domain.Actor, entryID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if err := requireJournalWrite(actor, entry.TenantID); err != nil {
		return err
	}
	if entry.Confirmed {
		return apperrors.NewConflictError("confirmed entries cannot be deleted")
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return err
	}

	if entry.VoucherID != nil {
		voucher, verr := s.voucherRepo.FindVoucherByID(ctx, *entry.VoucherID)
		if verr == nil {
			voucher.Status = domain.VoucherPending
			voucher.LastUpdatedAt = time.Now()
			voucher.LastUpdatedBy = actor.ID
			if uerr := s.voucherRepo.UpdateVoucher(ctx, *voucher); uerr != nil {
				s.LogError(ctx, uerr, "Failed to reset voucher status", slog.String("voucher_id", *entry.VoucherID))
			}
		}
	}

	s.LogInfo(ctx, "Journal entry deleted",
		slog.String("entry_id", entryID),
		slog.String("deleted_by", actor.ID))
	return nil
}
