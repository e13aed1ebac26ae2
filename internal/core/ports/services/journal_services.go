package services

import (
	"context"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// GenerationResult summarizes one batch run of the journal generator.
type GenerationResult struct {
	Generated int                 `json:"generated"`
	Skipped   map[string][]string `json:"skipped,omitempty"` // voucherID -> validation problems
}

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves a journal entry the actor may see.
	GetEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of the tenant's journal entries
	// using token-based pagination, newest first.
	ListEntries(ctx context.Context, actor domain.Actor, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListSubjects returns the chart of accounts, optionally filtered by type.
	ListSubjects(ctx context.Context, subjectType *string) ([]string, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// GenerateFromVouchers drafts one entry per pending voucher and persists
	// the valid ones, committing per voucher. Vouchers whose draft fails
	// validation are skipped and stay pending.
	GenerateFromVouchers(ctx context.Context, actor domain.Actor, tenantID string, voucherIDs []string) (*GenerationResult, error)

	// CreateEntry persists a manually written entry after validation.
	CreateEntry(ctx context.Context, actor domain.Actor, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// UpdateEntry updates an unconfirmed entry after validation.
	UpdateEntry(ctx context.Context, actor domain.Actor, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// ConfirmEntry marks an entry as reviewed. Confirmation is one-way and
	// requires the entry to validate cleanly.
	ConfirmEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error)

	// DeleteEntry removes an unconfirmed entry. Its source voucher, if any,
	// returns to pending.
	DeleteEntry(ctx context.Context, actor domain.Actor, entryID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
