package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/keiri-app/keiri-backend/internal/core/accounting"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

func validEntry() domain.JournalEntry {
	return domain.JournalEntry{
		Date:          time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		DebitSubject:  "旅費交通費",
		DebitAmount:   decimal.NewFromInt(3000),
		CreditSubject: "現金",
		CreditAmount:  decimal.NewFromInt(3000),
	}
}

func TestValidateEntry_Valid(t *testing.T) {
	assert.Empty(t, accounting.ValidateEntry(validEntry()))
}

func TestValidateEntry_MissingFields(t *testing.T) {
	problems := accounting.ValidateEntry(domain.JournalEntry{})

	assert.Equal(t, []string{
		"日付が設定されていません",
		"借方勘定科目が設定されていません",
		"借方金額が設定されていません",
		"貸方勘定科目が設定されていません",
		"貸方金額が設定されていません",
	}, problems)
}

func TestValidateEntry_Unbalanced(t *testing.T) {
	entry := validEntry()
	entry.CreditAmount = decimal.NewFromInt(2500)

	problems := accounting.ValidateEntry(entry)

	assert.Equal(t, []string{"借方金額(3000)と貸方金額(2500)が一致しません"}, problems)
}

func TestValidateEntry_ZeroDebitReportsMissingAndMismatch(t *testing.T) {
	entry := validEntry()
	entry.DebitAmount = decimal.Zero

	problems := accounting.ValidateEntry(entry)

	assert.Equal(t, []string{
		"借方金額が設定されていません",
		"借方金額(0)と貸方金額(3000)が一致しません",
	}, problems)
}

func TestValidateEntry_UnknownSubjects(t *testing.T) {
	entry := validEntry()
	entry.DebitSubject = "架空科目"
	entry.CreditSubject = "別の架空科目"

	problems := accounting.ValidateEntry(entry)

	assert.Equal(t, []string{
		"借方勘定科目「架空科目」が勘定科目マスタに存在しません",
		"貸方勘定科目「別の架空科目」が勘定科目マスタに存在しません",
	}, problems)
}

func TestValidateEntry_CollectsAllProblems(t *testing.T) {
	entry := domain.JournalEntry{
		DebitSubject: "架空科目",
		DebitAmount:  decimal.NewFromInt(1000),
		CreditAmount: decimal.NewFromInt(900),
	}

	problems := accounting.ValidateEntry(entry)

	assert.Contains(t, problems, "日付が設定されていません")
	assert.Contains(t, problems, "貸方勘定科目が設定されていません")
	assert.Contains(t, problems, "借方金額(1000)と貸方金額(900)が一致しません")
	assert.Contains(t, problems, "借方勘定科目「架空科目」が勘定科目マスタに存在しません")
	assert.Len(t, problems, 4)
}
