// Package extractor turns uploaded document bytes into a single normalized
// text blob. Extraction is best-effort: a corrupt page or a malformed table
// is reported as a warning and skipped, and the extraction only fails once
// no unit at all yields text. Resumes frequently arrive with partially broken
// structure, and downstream stages can work with partial text.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/gridrez/resume-parser/internal/core/domain"
	"github.com/gridrez/resume-parser/internal/observability/metrics"
)

type Extractor struct {
	metrics *metrics.Metrics
}

func New(m *metrics.Metrics) *Extractor {
	return &Extractor{metrics: m}
}

func (e *Extractor) Extract(ctx context.Context, data []byte, format domain.FileFormat) (domain.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExtractionResult{}, err
	}
	if len(data) == 0 {
		return domain.ExtractionResult{}, domain.WrapError(
			domain.ErrNoTextContent,
			"read upload",
			fmt.Errorf("empty input"),
		)
	}

	var (
		res domain.ExtractionResult
		err error
	)
	switch format {
	case domain.FormatPDF:
		res, err = extractPDF(data)
	case domain.FormatText:
		res, err = extractPlainText(data)
	case domain.FormatDocx:
		res, err = extractDocx(data)
	default:
		return domain.ExtractionResult{}, domain.WrapError(
			domain.ErrUnsupportedFormat,
			"detect format",
			fmt.Errorf("format %q, supported formats: %s", format, supportedFormatList()),
		)
	}
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	e.metrics.RecordExtractionWarnings(string(format), len(res.Warnings))
	return res, nil
}

func supportedFormatList() string {
	formats := domain.SupportedFormats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
