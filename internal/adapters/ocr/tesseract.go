package ocr

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
)

// TesseractExtractor recognizes text by shelling out to the tesseract binary.
// Stdout mode ("-" as output base) avoids temp files.
type TesseractExtractor struct {
	Binary string // defaults to "tesseract"
	Lang   string // defaults to "jpn"
}

// NewTesseractExtractor creates an extractor using the tesseract CLI.
func NewTesseractExtractor() *TesseractExtractor {
	return &TesseractExtractor{Binary: "tesseract", Lang: "jpn"}
}

var _ portssvc.TextExtractor = (*TesseractExtractor)(nil)

// ExtractText runs tesseract over the image and returns the recognized text.
func (t *TesseractExtractor) ExtractText(ctx context.Context, imagePath string) (string, error) {
	binary := t.Binary
	if binary == "" {
		binary = "tesseract"
	}
	lang := t.Lang
	if lang == "" {
		lang = "jpn"
	}

	cmd := exec.CommandContext(ctx, binary, imagePath, "-", "-l", lang)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract failed for %s: %w", imagePath, err)
	}
	return strings.TrimSpace(string(out)), nil
}
