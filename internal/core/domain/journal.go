package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a double-entry ledger record: one debit line and one credit
// line that must balance. Balance is enforced at validation time, not at
// construction time, so an entry under edit may be temporarily unbalanced.
type JournalEntry struct {
	EntryID          string          `json:"entryID"`
	TenantID         string          `json:"tenantID"`
	VoucherID        *string         `json:"voucherID,omitempty"`
	CompanyID        *string         `json:"companyID,omitempty"`
	Date             time.Time       `json:"date"`
	DebitSubject     string          `json:"debitSubject"`
	DebitAmount      decimal.Decimal `json:"debitAmount"`
	DebitSubSubject  string          `json:"debitSubSubject,omitempty"` // typically the payee name
	CreditSubject    string          `json:"creditSubject"`
	CreditAmount     decimal.Decimal `json:"creditAmount"`
	CreditSubSubject string          `json:"creditSubSubject,omitempty"`
	Description      string          `json:"description"`
	AutoGenerated    bool            `json:"autoGenerated"`
	Confirmed        bool            `json:"confirmed"` // one-way flag
	AuditFields
}
