package pgsql

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entrySelect = `
	SELECT j.entry_id, j.tenant_id, j.voucher_id, j.company_id, j.date,
		j.debit_subject, j.debit_amount, j.debit_sub_subject,
		j.credit_subject, j.credit_amount, j.credit_sub_subject,
		j.description, j.auto_generated, j.confirmed,
		j.created_at, j.created_by, j.last_updated_at, j.last_updated_by
	FROM journal_entries j
`

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID, &e.TenantID, &e.VoucherID, &e.CompanyID, &e.Date,
		&e.DebitSubject, &e.DebitAmount, &e.DebitSubSubject,
		&e.CreditSubject, &e.CreditAmount, &e.CreditSubSubject,
		&e.Description, &e.AutoGenerated, &e.Confirmed,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
	}
	return &e, nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return scanEntry(r.db(ctx).QueryRow(ctx, entrySelect+` WHERE j.entry_id = $1;`, entryID))
}

func (r *PgxJournalRepository) FindEntryByVoucherID(ctx context.Context, voucherID string) (*domain.JournalEntry, error) {
	return scanEntry(r.db(ctx).QueryRow(ctx, entrySelect+` WHERE j.voucher_id = $1;`, voucherID))
}

// pagination token: base64 of "<created_at RFC3339Nano>|<entry_id>"
func encodePageToken(createdAt time.Time, entryID string) string {
	return base64.URLEncoding.EncodeToString([]byte(createdAt.Format(time.RFC3339Nano) + "|" + entryID))
}

func decodePageToken(token string) (time.Time, string, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", err
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("malformed page token")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", err
	}
	return createdAt, parts[1], nil
}

func (r *PgxJournalRepository) ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := entrySelect + ` WHERE j.tenant_id = $1`
	args := []any{tenantID}

	if nextToken != nil && *nextToken != "" {
		createdAt, entryID, err := decodePageToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid page token")
		}
		query += ` AND (j.created_at, j.entry_id) < ($2, $3)`
		args = append(args, createdAt, entryID)
	}
	query += fmt.Sprintf(` ORDER BY j.created_at DESC, j.entry_id DESC LIMIT %d;`, limit+1)

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := encodePageToken(last.CreatedAt, last.EntryID)
		token = &t
	}
	return entries, token, nil
}

const entryInsert = `
	INSERT INTO journal_entries (
		entry_id, tenant_id, voucher_id, company_id, date,
		debit_subject, debit_amount, debit_sub_subject,
		credit_subject, credit_amount, credit_sub_subject,
		description, auto_generated, confirmed,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
`

func entryInsertArgs(entry domain.JournalEntry) []any {
	return []any{
		entry.EntryID, entry.TenantID, entry.VoucherID, entry.CompanyID, entry.Date,
		entry.DebitSubject, entry.DebitAmount, entry.DebitSubSubject,
		entry.CreditSubject, entry.CreditAmount, entry.CreditSubSubject,
		entry.Description, entry.AutoGenerated, entry.Confirmed,
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	}
}

func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	if _, err := r.db(ctx).Exec(ctx, entryInsert, entryInsertArgs(entry)...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("entry already exists for this voucher")
		}
		return apperrors.NewAppError(500, "failed to save journal entry "+entry.EntryID, err)
	}
	return nil
}

// SaveEntryForVoucher persists the entry and flips its source voucher from
// pending to processing in one transaction, so a voucher never leaves pending
// without its entry.
func (r *PgxJournalRepository) SaveEntryForVoucher(ctx context.Context, entry domain.JournalEntry, voucherID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, entryInsert, entryInsertArgs(entry)...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("entry already exists for voucher " + voucherID)
		}
		return apperrors.NewAppError(500, "failed to save journal entry "+entry.EntryID, err)
	}

	result, err := tx.Exec(ctx,
		`UPDATE vouchers SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE voucher_id = $1 AND status = $5;`,
		voucherID, domain.VoucherProcessing, entry.LastUpdatedAt, entry.LastUpdatedBy, domain.VoucherPending,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark voucher processing "+voucherID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewConflictError("voucher " + voucherID + " is not pending")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET date = $2, debit_subject = $3, debit_amount = $4, debit_sub_subject = $5,
			credit_subject = $6, credit_amount = $7, credit_sub_subject = $8,
			description = $9, confirmed = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE entry_id = $1;
	`
	result, err := r.db(ctx).Exec(ctx, query,
		entry.EntryID, entry.Date, entry.DebitSubject, entry.DebitAmount, entry.DebitSubSubject,
		entry.CreditSubject, entry.CreditAmount, entry.CreditSubSubject,
		entry.Description, entry.Confirmed,
		entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+entry.EntryID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	result, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
