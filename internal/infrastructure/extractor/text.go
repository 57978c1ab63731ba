package extractor

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gridrez/resume-parser/internal/core/domain"
)

// extractPlainText decodes UTF-8, falling back to a lossy decode that
// replaces invalid sequences instead of failing the upload outright.
func extractPlainText(data []byte) (domain.ExtractionResult, error) {
	var warnings []string
	text := string(data)
	if !utf8.Valid(data) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
		warnings = append(warnings, "invalid utf-8 sequences replaced during decode")
	}

	if strings.TrimSpace(text) == "" {
		return domain.ExtractionResult{}, domain.WrapError(
			domain.ErrNoTextContent,
			"decode text",
			errors.New("file contains no text"),
		)
	}
	return domain.ExtractionResult{Text: text, Warnings: warnings}, nil
}
