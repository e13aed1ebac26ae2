package accounting

import (
	"fmt"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// ValidateEntry collects every problem with a journal entry instead of
// stopping at the first one, so the caller can surface the full list to the
// bookkeeper. Messages are user-facing Japanese. A nil result means valid.
func ValidateEntry(entry domain.JournalEntry) []string {
	var problems []string

	required := []struct {
		label   string
		missing bool
	}{
		{"日付", entry.Date.IsZero()},
		{"借方勘定科目", entry.DebitSubject == ""},
		{"借方金額", entry.DebitAmount.IsZero()},
		{"貸方勘定科目", entry.CreditSubject == ""},
		{"貸方金額", entry.CreditAmount.IsZero()},
	}
	for _, f := range required {
		if f.missing {
			problems = append(problems, fmt.Sprintf("%sが設定されていません", f.label))
		}
	}

	// Checked even when an amount is missing, so a zero debit against a real
	// credit reports both the missing field and the imbalance.
	if !entry.DebitAmount.Equal(entry.CreditAmount) {
		problems = append(problems, fmt.Sprintf(
			"借方金額(%s)と貸方金額(%s)が一致しません",
			entry.DebitAmount.String(), entry.CreditAmount.String()))
	}

	if entry.DebitSubject != "" {
		if _, ok := Classify(entry.DebitSubject); !ok {
			problems = append(problems, fmt.Sprintf("借方勘定科目「%s」が勘定科目マスタに存在しません", entry.DebitSubject))
		}
	}
	if entry.CreditSubject != "" {
		if _, ok := Classify(entry.CreditSubject); !ok {
			problems = append(problems, fmt.Sprintf("貸方勘定科目「%s」が勘定科目マスタに存在しません", entry.CreditSubject))
		}
	}

	return problems
}
