package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherStatus tracks a captured receipt through the bookkeeping pipeline.
// Generation moves a voucher from pending to processing; deleting the
// generated entry moves it back.
type VoucherStatus string

const (
	VoucherPending    VoucherStatus = "pending"
	VoucherProcessing VoucherStatus = "processing"
	VoucherDone       VoucherStatus = "done"
)

// Voucher is a captured receipt or invoice awaiting conversion into a journal
// entry. Extracted fields are best-effort: any of them may be empty.
type Voucher struct {
	VoucherID   string          `json:"voucherID"`
	TenantID    string          `json:"tenantID"`
	UploadedBy  string          `json:"uploadedBy"`
	ImagePath   string          `json:"imagePath"`
	RawText     string          `json:"rawText"` // OCR output, possibly AI-corrected
	Amount      decimal.Decimal `json:"amount"`  // zero means not extracted
	Date        time.Time       `json:"date"`    // zero means not extracted
	Description string          `json:"description"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	PostalCode  string          `json:"postalCode"`
	CompanyID   *string         `json:"companyID,omitempty"`
	Status      VoucherStatus   `json:"status"`
	AuditFields
}

// Company is a normalized counter-party record matched to vouchers during
// ingestion. The journal engine only reads it.
type Company struct {
	CompanyID       string `json:"companyID"`
	TenantID        string `json:"tenantID"`
	Name            string `json:"name"`
	CorporateNumber string `json:"corporateNumber,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	Address         string `json:"address,omitempty"`
	Phone           string `json:"phone,omitempty"`
	AuditFields
}

// ReceiptExtraction is what the OCR collaborator yields for one image.
// Every field is best-effort and may be absent.
type ReceiptExtraction struct {
	RawText      string
	PhoneNumbers []string
	Addresses    []string
	PostalCode   string
	Amount       decimal.Decimal
	Date         time.Time
}
