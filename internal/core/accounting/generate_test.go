package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiri-app/keiri-backend/internal/core/accounting"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

func testVoucher(description string, amount int64) domain.Voucher {
	return domain.Voucher{
		VoucherID:   "vch-001",
		TenantID:    "tnt-001",
		Amount:      decimal.NewFromInt(amount),
		Date:        time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Description: description,
		Status:      domain.VoucherPending,
	}
}

func TestGenerateEntry(t *testing.T) {
	v := testVoucher("タクシー代", 3000)

	entry := accounting.GenerateEntry(v, "株式会社サンプル", "")

	assert.Equal(t, "旅費交通費", entry.DebitSubject)
	assert.Equal(t, "株式会社サンプル", entry.DebitSubSubject)
	assert.Equal(t, "現金", entry.CreditSubject)
	assert.True(t, entry.DebitAmount.Equal(decimal.NewFromInt(3000)))
	assert.True(t, entry.CreditAmount.Equal(entry.DebitAmount))
	assert.Equal(t, "タクシー代", entry.Description)
	assert.True(t, entry.AutoGenerated)
	assert.False(t, entry.Confirmed)
	require.NotNil(t, entry.VoucherID)
	assert.Equal(t, "vch-001", *entry.VoucherID)
	assert.Empty(t, accounting.ValidateEntry(entry))
}

func TestGenerateEntry_DescriptionFallback(t *testing.T) {
	v := testVoucher("", 500)

	withCompany := accounting.GenerateEntry(v, "株式会社サンプル", "")
	assert.Equal(t, "株式会社サンプル 雑費", withCompany.Description)

	withoutCompany := accounting.GenerateEntry(v, "", "")
	assert.Equal(t, "雑費", withoutCompany.Description)
}

func TestGenerateEntry_PaymentMethod(t *testing.T) {
	v := testVoucher("Google 広告費", 50000)

	entry := accounting.GenerateEntry(v, "", "未払金")

	assert.Equal(t, "広告宣伝費", entry.DebitSubject)
	assert.Equal(t, "未払金", entry.CreditSubject)
	assert.Empty(t, entry.DebitSubSubject)

	// Empty payment method defaults to cash.
	assert.Equal(t, "現金", accounting.GenerateEntry(v, "", "").CreditSubject)
}

func TestBatchDrafts(t *testing.T) {
	vouchers := []domain.Voucher{
		testVoucher("タクシー代", 3000),
		func() domain.Voucher {
			v := testVoucher("日付のない領収書", 800)
			v.VoucherID = "vch-002"
			v.Date = time.Time{}
			return v
		}(),
		func() domain.Voucher {
			v := testVoucher("会議 カフェ", 1200)
			v.VoucherID = "vch-003"
			return v
		}(),
	}

	var valid, invalid int
	for d := range accounting.BatchDrafts(vouchers, func(domain.Voucher) string { return "" }, "現金") {
		if len(d.Problems) == 0 {
			valid++
		} else {
			invalid++
			assert.Equal(t, "vch-002", d.Voucher.VoucherID)
			assert.Contains(t, d.Problems, "日付が設定されていません")
		}
	}
	assert.Equal(t, 2, valid)
	assert.Equal(t, 1, invalid)
}

func TestBatchDrafts_PaymentMethodPerVoucher(t *testing.T) {
	vouchers := []domain.Voucher{
		testVoucher("広告費 クレジットカード払い", 50000),
		testVoucher("レジにて支払", 800),
	}

	var credits []string
	for d := range accounting.BatchDrafts(vouchers, func(domain.Voucher) string { return "" }, "普通預金") {
		credits = append(credits, d.Entry.CreditSubject)
	}

	// The card keyword wins per voucher; the default only covers vouchers
	// whose description suggests nothing.
	assert.Equal(t, []string{"未払金", "普通預金"}, credits)
}

func TestBatchDrafts_Restartable(t *testing.T) {
	vouchers := []domain.Voucher{testVoucher("タクシー代", 3000)}
	seq := accounting.BatchDrafts(vouchers, func(domain.Voucher) string { return "" }, "現金")

	var first, second []accounting.Draft
	for d := range seq {
		first = append(first, d)
	}
	for d := range seq {
		second = append(second, d)
	}
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Entry.DebitSubject, second[0].Entry.DebitSubject)
}
