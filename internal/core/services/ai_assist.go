package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
)

// aiAssist wraps the TextCompleter port with the prompts the capture pipeline
// uses. Every helper falls back to its input when the model is unreachable or
// unconfigured: AI assistance must never block ingestion.
type aiAssist struct {
	completer portssvc.TextCompleter
}

func (a aiAssist) enabled(settings domain.AISettings) bool {
	return a.completer != nil && settings.Configured()
}

// CorrectOCRText asks the model to fix common recognition mistakes.
func (a aiAssist) CorrectOCRText(ctx context.Context, settings domain.AISettings, ocrText string) string {
	if !a.enabled(settings) || ocrText == "" {
		return ocrText
	}
	prompt := fmt.Sprintf(`以下はレシート・領収書からOCRで抽出されたテキストです。
OCRの誤認識を修正し、正確なテキストに補正してください。

【補正ルール】
1. 「林式会社」→「株式会社」
2. 数字の「0」と英字の「O」を区別
3. 「1」と「l」（エル）を区別
4. 住所の番地の誤認識を修正
5. 会社名の略称を正式名称に変換（㈱→株式会社、(株)→株式会社）

【OCRテキスト】
%s

【補正後のテキスト】
補正後のテキストのみを出力してください。説明は不要です。`, ocrText)

	corrected, err := a.completer.Complete(ctx, settings, prompt)
	if err != nil || strings.TrimSpace(corrected) == "" {
		return ocrText
	}
	return strings.TrimSpace(corrected)
}

// NormalizeCompanyName asks the model to expand abbreviations and fix
// notation variants in a company name.
func (a aiAssist) NormalizeCompanyName(ctx context.Context, settings domain.AISettings, name string) string {
	if !a.enabled(settings) || name == "" {
		return name
	}
	prompt := fmt.Sprintf(`以下の会社名を正式名称に正規化してください。

【会社名】
%s

【正規化ルール】
1. 略称を正式名称に変換（㈱→株式会社、(株)→株式会社、(有)→有限会社など）
2. 前株・後株を正しい位置に配置
3. カタカナ・英字の表記ゆれを統一
4. スペースや記号を適切に処理

【出力】
正規化された会社名のみを出力してください。説明は不要です。`, name)

	normalized, err := a.completer.Complete(ctx, settings, prompt)
	if err != nil || strings.TrimSpace(normalized) == "" {
		return name
	}
	return strings.TrimSpace(normalized)
}

var leadingNumberPattern = regexp.MustCompile(`\d+`)

// SelectBestCompany picks the candidate matching the extracted address.
// With no model, or on any model error, the first candidate wins.
func (a aiAssist) SelectBestCompany(ctx context.Context, settings domain.AISettings, candidates []domain.Company, address string) *domain.Company {
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 || !a.enabled(settings) {
		return &candidates[0]
	}

	var sb strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, c.Name, c.Address)
	}
	prompt := fmt.Sprintf(`以下の企業候補から、OCRで抽出された住所に最も一致する企業を選択してください。

【OCRで抽出された住所】
%s

【企業候補】
%s
【出力】
最も一致する企業の番号のみを出力してください（1, 2, 3...）。
説明は不要です。`, address, sb.String())

	response, err := a.completer.Complete(ctx, settings, prompt)
	if err == nil {
		if m := leadingNumberPattern.FindString(response); m != "" {
			if idx, cerr := strconv.Atoi(m); cerr == nil && idx >= 1 && idx <= len(candidates) {
				return &candidates[idx-1]
			}
		}
	}
	return &candidates[0]
}
