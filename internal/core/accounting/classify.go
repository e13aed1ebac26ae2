package accounting

import (
	"strings"

	"github.com/shopspring/decimal"
)

// keywordRule maps a debit subject to the description keywords that imply it.
// Rules are checked in order and the first hit wins, so more specific
// categories are listed before generic ones (支払手数料 would otherwise
// swallow クレジット payments meant for other subjects).
type keywordRule struct {
	subject  string
	keywords []string
}

var keywordRules = []keywordRule{
	{"旅費交通費", []string{"タクシー", "JR", "電車", "新幹線", "バス", "航空", "ANA", "JAL", "ガソリン", "ETC", "高速", "駐車"}},
	{"通信費", []string{"携帯", "スマホ", "docomo", "au", "SoftBank", "電話", "インターネット", "プロバイダ", "郵便", "宅配"}},
	{"消耗品費", []string{"文房具", "事務用品", "コピー用紙", "インク", "トナー", "電池", "USB", "文具"}},
	{"水道光熱費", []string{"電気", "水道", "ガス", "東京電力", "東京ガス"}},
	{"地代家賃", []string{"家賃", "賃料", "駐車場", "倉庫", "事務所"}},
	{"広告宣伝費", []string{"広告", "宣伝", "チラシ", "ポスター", "Google", "Facebook", "Instagram", "Twitter", "YouTube"}},
	{"接待交際費", []string{"飲食", "居酒屋", "レストラン", "食事", "接待", "贈答", "ギフト"}},
	{"会議費", []string{"会議", "カフェ", "スターバックス", "ドトール", "喫茶"}},
	{"新聞図書費", []string{"書籍", "本", "雑誌", "新聞", "Amazon", "書店"}},
	{"修繕費", []string{"修理", "修繕", "メンテナンス", "保守"}},
	{"車両費", []string{"車検", "自動車", "洗車", "オイル", "タイヤ"}},
	{"支払手数料", []string{"手数料", "振込", "銀行", "決済", "クレジット"}},
	{"支払保険料", []string{"保険", "損保", "生命保険", "火災保険", "自動車保険"}},
	{"租税公課", []string{"税金", "印紙", "登録", "免許", "自動車税", "固定資産税"}},
}

var stockPurchaseThreshold = decimal.NewFromInt(100000)

// EstimateAccountSubject picks a debit subject from a free-text description,
// an amount and the payee name when one is known (a payee like スターバックス
// classifies a receipt whose description says nothing). Keyword match takes
// precedence; large purchase-like amounts fall through to 仕入高 and
// everything else to 雑費.
func EstimateAccountSubject(description string, amount decimal.Decimal, payeeName string) string {
	text := description
	if payeeName != "" {
		text = description + " " + payeeName
	}
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.subject
			}
		}
	}
	if amount.GreaterThanOrEqual(stockPurchaseThreshold) &&
		(strings.Contains(description, "購入") || strings.Contains(description, "買")) {
		return "仕入高"
	}
	return "雑費"
}

// SuggestPaymentMethod maps a payment description to the credit subject.
// Card payments become a liability until settled, bank transfers hit the
// deposit account, and anything unrecognized is treated as cash.
func SuggestPaymentMethod(description string) string {
	desc := strings.ToLower(description)
	if strings.Contains(desc, "クレジット") || strings.Contains(desc, "カード") || strings.Contains(desc, "credit") {
		return "未払金"
	}
	if strings.Contains(desc, "振込") || strings.Contains(desc, "振り込み") || strings.Contains(desc, "口座") {
		return "普通預金"
	}
	return "現金"
}
