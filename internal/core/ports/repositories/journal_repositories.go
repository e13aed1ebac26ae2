package repositories

import (
	"context"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves a journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByTenant retrieves a paginated list of a tenant's journal
	// entries using token-based pagination, newest first. It returns the
	// entries, a token for the next page, and an error.
	ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindEntryByVoucherID retrieves the entry generated from a voucher, if any.
	FindEntryByVoucherID(ctx context.Context, voucherID string) (*domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveEntryForVoucher persists a generated entry and flips its source
	// voucher to done within one transaction.
	SaveEntryForVoucher(ctx context.Context, entry domain.JournalEntry, voucherID string) error

	// SaveEntry persists a manually created entry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntry updates a stored entry.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes an entry.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
