package services

import (
	"context"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// TextExtractor turns a receipt image into raw text. The engine behind it is
// deliberately opaque; callers only see text out.
type TextExtractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// TextCompleter is the minimal surface of a text-completion model. Used for
// OCR cleanup and counter-party name normalization. Implementations must be
// treated as fallible: callers fall back to their input on any error.
type TextCompleter interface {
	Complete(ctx context.Context, settings domain.AISettings, prompt string) (string, error)
}

// CompanyLocator looks up company candidates in an external registry by
// corporate number, name or address fragment.
type CompanyLocator interface {
	FindCandidates(ctx context.Context, query string) ([]domain.Company, error)
}
