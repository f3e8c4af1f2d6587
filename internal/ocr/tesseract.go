package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TextExtractor extracts text from a resume image.
type TextExtractor interface {
	ExtractText(image []byte) (string, error)
}

// TesseractExtractor runs OCR through a local Tesseract install.
type TesseractExtractor struct {
	language string
}

// Ensure TesseractExtractor implements TextExtractor
var _ TextExtractor = (*TesseractExtractor)(nil)

// NewTesseractExtractor creates an extractor for the given language.
func NewTesseractExtractor(language string) *TesseractExtractor {
	if language == "" {
		language = "eng"
	}
	return &TesseractExtractor{language: language}
}

// ExtractText recognizes text in the image. A fresh client per call because
// gosseract clients are not safe for concurrent use.
func (e *TesseractExtractor) ExtractText(image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set ocr image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}
