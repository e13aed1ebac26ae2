// Package ocr turns receipt images into structured fields. Text recognition
// itself is delegated to an external engine; this package owns the pattern
// extraction that runs on the recognized text.
package ocr

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{2,4}-\d{2,4}-\d{4}`),
	regexp.MustCompile(`\d{3}-\d{3}-\d{4}`),
	regexp.MustCompile(`\(\d{2,4}\)\s*\d{2,4}-\d{4}`),
	regexp.MustCompile(`\d{10,11}`),
}

var prefectures = []string{
	"北海道", "青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県", "岐阜県",
	"静岡県", "愛知県", "三重県", "滋賀県", "京都府", "大阪府", "兵庫県",
	"奈良県", "和歌山県", "鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県", "福岡県", "佐賀県", "長崎県",
	"熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

var postalPattern = regexp.MustCompile(`〒?\s*(\d{3}-\d{4})`)

var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`¥\s*([\d,]+)`),
	regexp.MustCompile(`([\d,]+)\s*円`),
	regexp.MustCompile(`合計\s*[：:]\s*([\d,]+)`),
	regexp.MustCompile(`小計\s*[：:]\s*([\d,]+)`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})[年/\-](\d{1,2})[月/\-](\d{1,2})`),
	regexp.MustCompile(`(\d{4})\.(\d{1,2})\.(\d{1,2})`),
}

// ExtractPhoneNumbers collects phone-number-shaped strings, deduplicated,
// preserving first-seen order.
func ExtractPhoneNumbers(text string) []string {
	seen := make(map[string]struct{})
	var numbers []string
	for _, p := range phonePatterns {
		for _, m := range p.FindAllString(text, -1) {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			numbers = append(numbers, m)
		}
	}
	return numbers
}

// ExtractAddresses returns every line mentioning a prefecture. Receipts print
// the issuer address on one line, so line granularity is good enough.
func ExtractAddresses(text string) []string {
	var addresses []string
	for _, line := range strings.Split(text, "\n") {
		for _, pref := range prefectures {
			if strings.Contains(line, pref) {
				cleaned := strings.TrimSpace(line)
				if len([]rune(cleaned)) > 5 {
					addresses = append(addresses, cleaned)
				}
				break
			}
		}
	}
	return addresses
}

// ExtractPostalCode returns the first postal code in the text, empty if none.
func ExtractPostalCode(text string) string {
	if m := postalPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractAmount returns the largest amount found in the text. The total is
// normally the largest figure on a receipt. Zero means nothing was found.
func ExtractAmount(text string) decimal.Decimal {
	best := decimal.Zero
	for _, p := range amountPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			v, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
			if err != nil {
				continue
			}
			if v.GreaterThan(best) {
				best = v
			}
		}
	}
	return best
}

// ExtractDate returns the first date in the text. The zero time means none.
func ExtractDate(text string) time.Time {
	for _, p := range datePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			t, err := time.Parse("2006-1-2", m[1]+"-"+m[2]+"-"+m[3])
			if err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// ExtractFields runs every extractor over the recognized text.
func ExtractFields(text string) domain.ReceiptExtraction {
	return domain.ReceiptExtraction{
		RawText:      text,
		PhoneNumbers: ExtractPhoneNumbers(text),
		Addresses:    ExtractAddresses(text),
		PostalCode:   ExtractPostalCode(text),
		Amount:       ExtractAmount(text),
		Date:         ExtractDate(text),
	}
}
