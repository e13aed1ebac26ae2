package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// GenerateEntriesRequest selects which pending vouchers to journalize.
// An empty list means all pending vouchers of the tenant.
type GenerateEntriesRequest struct {
	VoucherIDs []string `json:"voucherIDs"`
}

// CreateEntryRequest defines the data for a manually written journal entry.
type CreateEntryRequest struct {
	Date             time.Time       `json:"date" binding:"required"`
	DebitSubject     string          `json:"debitSubject" binding:"required"`
	DebitAmount      decimal.Decimal `json:"debitAmount" binding:"required"`
	DebitSubSubject  string          `json:"debitSubSubject"`
	CreditSubject    string          `json:"creditSubject" binding:"required"`
	CreditAmount     decimal.Decimal `json:"creditAmount" binding:"required"`
	CreditSubSubject string          `json:"creditSubSubject"`
	Description      string          `json:"description"`
	CompanyID        *string         `json:"companyID"`
}

// ToJournalEntry converts the request into a domain entry for the tenant.
func (r CreateEntryRequest) ToJournalEntry(tenantID string) domain.JournalEntry {
	return domain.JournalEntry{
		TenantID:         tenantID,
		CompanyID:        r.CompanyID,
		Date:             r.Date,
		DebitSubject:     r.DebitSubject,
		DebitAmount:      r.DebitAmount,
		DebitSubSubject:  r.DebitSubSubject,
		CreditSubject:    r.CreditSubject,
		CreditAmount:     r.CreditAmount,
		CreditSubSubject: r.CreditSubSubject,
		Description:      r.Description,
	}
}

// UpdateEntryRequest defines the fields allowed for updating an unconfirmed entry.
type UpdateEntryRequest struct {
	Date             time.Time       `json:"date" binding:"required"`
	DebitSubject     string          `json:"debitSubject" binding:"required"`
	DebitAmount      decimal.Decimal `json:"debitAmount" binding:"required"`
	DebitSubSubject  string          `json:"debitSubSubject"`
	CreditSubject    string          `json:"creditSubject" binding:"required"`
	CreditAmount     decimal.Decimal `json:"creditAmount" binding:"required"`
	CreditSubSubject string          `json:"creditSubSubject"`
	Description      string          `json:"description"`
}

// Apply overlays the request fields onto the entry.
func (r UpdateEntryRequest) Apply(e *domain.JournalEntry) {
	e.Date = r.Date
	e.DebitSubject = r.DebitSubject
	e.DebitAmount = r.DebitAmount
	e.DebitSubSubject = r.DebitSubSubject
	e.CreditSubject = r.CreditSubject
	e.CreditAmount = r.CreditAmount
	e.CreditSubSubject = r.CreditSubSubject
	e.Description = r.Description
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int    `form:"limit,default=50"`
	NextToken string `form:"nextToken"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID          string          `json:"entryID"`
	TenantID         string          `json:"tenantID"`
	VoucherID        *string         `json:"voucherID,omitempty"`
	CompanyID        *string         `json:"companyID,omitempty"`
	Date             time.Time       `json:"date"`
	DebitSubject     string          `json:"debitSubject"`
	DebitAmount      decimal.Decimal `json:"debitAmount"`
	DebitSubSubject  string          `json:"debitSubSubject,omitempty"`
	CreditSubject    string          `json:"creditSubject"`
	CreditAmount     decimal.Decimal `json:"creditAmount"`
	CreditSubSubject string          `json:"creditSubSubject,omitempty"`
	Description      string          `json:"description"`
	AutoGenerated    bool            `json:"autoGenerated"`
	Confirmed        bool            `json:"confirmed"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:          e.EntryID,
		TenantID:         e.TenantID,
		VoucherID:        e.VoucherID,
		CompanyID:        e.CompanyID,
		Date:             e.Date,
		DebitSubject:     e.DebitSubject,
		DebitAmount:      e.DebitAmount,
		DebitSubSubject:  e.DebitSubSubject,
		CreditSubject:    e.CreditSubject,
		CreditAmount:     e.CreditAmount,
		CreditSubSubject: e.CreditSubSubject,
		Description:      e.Description,
		AutoGenerated:    e.AutoGenerated,
		Confirmed:        e.Confirmed,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
}

// ListEntriesResponse wraps a page of journal entries with the continuation token.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts a page of domain entries to ListEntriesResponse DTO.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListEntriesResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToJournalEntryResponse(&e)
	}
	return ListEntriesResponse{Entries: responses, NextToken: nextToken}
}

// ListSubjectsResponse wraps the chart of account subject names.
type ListSubjectsResponse struct {
	Subjects []string `json:"subjects"`
}
