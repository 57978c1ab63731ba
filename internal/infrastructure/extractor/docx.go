package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gridrez/resume-parser/internal/core/domain"
)

const docxDocumentPath = "word/document.xml"

// tableCellDelimiter joins the cells of one table row into a single line.
const tableCellDelimiter = " | "

// extractDocx pulls paragraph text and, separately, flattened table text out
// of the document body. The two passes fail independently: a malformed table
// is non-fatal as long as paragraphs yielded content and vice versa. Only
// when both passes come back empty does the extraction fail.
func extractDocx(data []byte) (domain.ExtractionResult, error) {
	body, err := readDocxDocument(data)
	if err != nil {
		return domain.ExtractionResult{}, domain.WrapError(domain.ErrNoTextContent, "open docx", err)
	}

	var warnings []string
	paragraphs, err := docxParagraphs(body)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("docx paragraph extraction stopped early: %v", err))
	}
	tableLines, err := docxTableLines(body)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("docx table extraction stopped early: %v", err))
	}

	parts := append(paragraphs, tableLines...)
	if len(parts) == 0 {
		return domain.ExtractionResult{}, domain.WrapError(
			domain.ErrNoTextContent,
			"extract docx",
			errors.New("neither paragraphs nor tables yielded text"),
		)
	}
	return domain.ExtractionResult{
		Text:     strings.Join(parts, "\n"),
		Warnings: warnings,
	}, nil
}

func readDocxDocument(data []byte) ([]byte, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	for _, file := range archive.File {
		if file.Name != docxDocumentPath {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", docxDocumentPath, err)
		}
		defer rc.Close()
		body, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", docxDocumentPath, err)
		}
		return body, nil
	}
	return nil, fmt.Errorf("%s missing from archive", docxDocumentPath)
}

// docxParagraphs collects the text of body-level w:p elements, skipping any
// that sit inside tables. On a mid-stream XML error the paragraphs gathered
// so far are returned alongside the error.
func docxParagraphs(body []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	var parts []string
	var current strings.Builder
	inParagraph := false
	tableDepth := 0

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return parts, nil
		}
		if err != nil {
			return parts, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				if tableDepth == 0 {
					inParagraph = true
					current.Reset()
				}
			case "t":
				if inParagraph && tableDepth == 0 {
					var run string
					if err := decoder.DecodeElement(&run, &t); err != nil {
						return parts, err
					}
					current.WriteString(run)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
				}
			case "p":
				if inParagraph {
					if strings.TrimSpace(current.String()) != "" {
						parts = append(parts, current.String())
					}
					inParagraph = false
				}
			}
		}
	}
}

// docxTableLines flattens table content: the cells of each row are joined
// with tableCellDelimiter and every non-empty row becomes one line.
func docxTableLines(body []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	var lines []string
	var cell strings.Builder
	var rowCells []string
	inCell := false
	tableDepth := 0

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth > 0 {
					rowCells = nil
				}
			case "tc":
				if tableDepth > 0 {
					inCell = true
					cell.Reset()
				}
			case "t":
				if inCell {
					var run string
					if err := decoder.DecodeElement(&run, &t); err != nil {
						return lines, err
					}
					cell.WriteString(run)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
				}
			case "tc":
				if inCell {
					if trimmed := strings.TrimSpace(cell.String()); trimmed != "" {
						rowCells = append(rowCells, trimmed)
					}
					inCell = false
				}
			case "tr":
				if tableDepth > 0 && len(rowCells) > 0 {
					lines = append(lines, strings.Join(rowCells, tableCellDelimiter))
					rowCells = nil
				}
			}
		}
	}
}
