// Package export renders completed profiles into an XLSX workbook for
// recruiters who review candidates in spreadsheets.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gridrez/resume-parser/internal/core/domain"
	"github.com/gridrez/resume-parser/internal/core/ports"
)

const sheetName = "Profiles"

type Service struct {
	store  ports.ResumeStore
	logger *slog.Logger
}

func NewService(store ports.ResumeStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportProfilesXLSX writes one row per completed resume. Records still
// processing or in error are skipped; the workbook only carries parsed data.
func (s *Service) ExportProfilesXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{
		"Name",
		"Current Role",
		"Experience (years)",
		"Skills",
		"Education",
		"Email",
		"Phone",
		"Location",
		"Summary",
		"Source File",
		"Uploaded",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	row := 2
	exported := 0
	for _, rec := range recs {
		if rec.Status != domain.StatusCompleted || rec.Profile == nil {
			continue
		}
		p := rec.Profile

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}

		write(1, p.Name)
		write(2, p.CurrentRole)
		write(3, p.ExperienceYears)
		write(4, strings.Join(p.Skills, ", "))
		write(5, formatEducation(p.Education))
		write(6, orEmpty(p.Email))
		write(7, orEmpty(p.Phone))
		write(8, orEmpty(p.Location))
		write(9, p.Summary)
		write(10, rec.FileName)
		write(11, rec.CreatedAt.UTC().Format("2006-01-02 15:04"))

		row++
		exported++
	}

	_ = f.SetColWidth(sheetName, "A", "B", 24)
	_ = f.SetColWidth(sheetName, "C", "C", 10)
	_ = f.SetColWidth(sheetName, "D", "E", 40)
	_ = f.SetColWidth(sheetName, "F", "H", 22)
	_ = f.SetColWidth(sheetName, "I", "I", 60)
	_ = f.SetColWidth(sheetName, "J", "K", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export_xlsx_ok",
		"rows", exported,
		"skipped", len(recs)-exported,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func formatEducation(entries []domain.Education) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		segment := e.Degree
		if e.Institution != "" {
			if segment != "" {
				segment += ", "
			}
			segment += e.Institution
		}
		if e.GraduationYear != nil {
			segment += " (" + strconv.Itoa(*e.GraduationYear) + ")"
		}
		if segment != "" {
			parts = append(parts, segment)
		}
	}
	return strings.Join(parts, "; ")
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
