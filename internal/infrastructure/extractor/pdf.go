package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/gridrez/resume-parser/internal/core/domain"
)

// extractPDF walks the document page by page. A page that fails to decode is
// recorded as a warning and skipped; the extraction fails only when zero
// pages yield text. Page order is preserved in the joined output.
func extractPDF(data []byte) (domain.ExtractionResult, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.ExtractionResult{}, domain.WrapError(domain.ErrNoTextContent, "open pdf", err)
	}

	var parts []string
	var warnings []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		text, err := extractPDFPage(reader, pageNum)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("pdf page %d skipped: %v", pageNum, err))
			continue
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return domain.ExtractionResult{}, domain.WrapError(
			domain.ErrNoTextContent,
			"extract pdf",
			errors.New("no page yielded text"),
		)
	}
	return domain.ExtractionResult{
		Text:     strings.Join(parts, "\n"),
		Warnings: warnings,
	}, nil
}

// extractPDFPage isolates one page so a malformed content stream cannot take
// down the rest of the document. The pdf library panics on some corrupt
// streams, so the recover is part of the page-level fault boundary.
func extractPDFPage(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("page decode panic: %v", r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", errors.New("page object is null")
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}
