package accounting

import (
	"fmt"
	"iter"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// GenerateEntry drafts a balanced journal entry from a voucher, the name of
// its matched counter-party (empty when no company matched) and the credit
// subject to book the payment against (empty means cash). The draft carries
// AutoGenerated=true and Confirmed=false; a bookkeeper reviews it later.
func GenerateEntry(voucher domain.Voucher, companyName, paymentMethod string) domain.JournalEntry {
	subject := EstimateAccountSubject(voucher.Description, voucher.Amount, companyName)
	payment := paymentMethod
	if payment == "" {
		payment = "現金"
	}

	description := voucher.Description
	if description == "" {
		if companyName != "" {
			description = fmt.Sprintf("%s %s", companyName, subject)
		} else {
			description = subject
		}
	}

	voucherID := voucher.VoucherID
	return domain.JournalEntry{
		TenantID:        voucher.TenantID,
		VoucherID:       &voucherID,
		CompanyID:       voucher.CompanyID,
		Date:            voucher.Date,
		DebitSubject:    subject,
		DebitAmount:     voucher.Amount,
		DebitSubSubject: companyName,
		CreditSubject:   payment,
		CreditAmount:    voucher.Amount,
		Description:     description,
		AutoGenerated:   true,
		Confirmed:       false,
	}
}

// Draft pairs a voucher with its generated entry and any validation findings.
// An invalid draft (len(Problems) > 0) must not be persisted.
type Draft struct {
	Voucher  domain.Voucher
	Entry    domain.JournalEntry
	Problems []string
}

// BatchDrafts lazily drafts and validates one entry per voucher. The payment
// method comes from each voucher's own description, falling back to
// defaultPaymentMethod when the heuristic suggests nothing beyond cash. The
// sequence is pure and restartable; nothing is persisted here, and one bad
// voucher never stops the rest from being drafted.
func BatchDrafts(vouchers []domain.Voucher, companyName func(domain.Voucher) string, defaultPaymentMethod string) iter.Seq[Draft] {
	return func(yield func(Draft) bool) {
		for _, v := range vouchers {
			payment := SuggestPaymentMethod(v.Description)
			if payment == "現金" && defaultPaymentMethod != "" {
				payment = defaultPaymentMethod
			}
			entry := GenerateEntry(v, companyName(v), payment)
			d := Draft{Voucher: v, Entry: entry, Problems: ValidateEntry(entry)}
			if !yield(d) {
				return
			}
		}
	}
}
