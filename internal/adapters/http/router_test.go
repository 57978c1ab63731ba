package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gridrez/resume-parser/internal/core/domain"
	"github.com/gridrez/resume-parser/internal/export"
	"github.com/gridrez/resume-parser/internal/infrastructure/repository/inmemory"
)

type intakeFake struct {
	gotFileName string
	gotFormat   domain.FileFormat
	gotData     []byte

	rec *domain.Resume
	err error
}

func (f *intakeFake) Upload(_ context.Context, fileName string, format domain.FileFormat, data []byte) (*domain.Resume, error) {
	f.gotFileName = fileName
	f.gotFormat = format
	f.gotData = data
	if f.err != nil {
		return nil, f.err
	}
	return f.rec, nil
}

type readerFake struct {
	records map[string]*domain.Resume
}

func (f *readerFake) GetByID(_ context.Context, id string) (*domain.Resume, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, domain.ErrResumeNotFound
	}
	return rec, nil
}

func newTestRouter(intake *intakeFake, reader *readerFake) *Router {
	if reader == nil {
		reader = &readerFake{records: map[string]*domain.Resume{}}
	}
	exporter := export.NewService(inmemory.NewResumeStore(), nil)
	return NewRouter(intake, reader, exporter, nil, 10<<20, TrafficLimits{})
}

func multipartUpload(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadResumeReturnsRecord(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	intake := &intakeFake{rec: &domain.Resume{
		ID:        "r1",
		FileName:  "original.txt",
		Status:    domain.StatusCompleted,
		CreatedAt: createdAt,
	}}
	handler := newTestRouter(intake, nil).Handler()

	body, contentType := multipartUpload(t, "jane.txt", []byte("resume content"))
	req := httptest.NewRequest(http.MethodPost, "/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if intake.gotFormat != domain.FormatText {
		t.Fatalf("expected txt format, got %q", intake.gotFormat)
	}
	if string(intake.gotData) != "resume content" {
		t.Fatalf("unexpected upload bytes: %q", intake.gotData)
	}

	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "r1" || resp.Status != domain.StatusCompleted {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.FileName != "jane.txt" {
		t.Fatalf("response must carry the submitted file name, got %q", resp.FileName)
	}
	if !resp.UploadDate.Equal(createdAt) {
		t.Fatalf("response must carry the record's upload date, got %v", resp.UploadDate)
	}
}

func TestUploadResumeRequiresFileField(t *testing.T) {
	handler := newTestRouter(&intakeFake{}, nil).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/resumes", strings.NewReader("not multipart"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUploadResumeMethodNotAllowed(t *testing.T) {
	handler := newTestRouter(&intakeFake{}, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestUploadResumeRejectsOversizedFile(t *testing.T) {
	intake := &intakeFake{}
	reader := &readerFake{records: map[string]*domain.Resume{}}
	exporter := export.NewService(inmemory.NewResumeStore(), nil)
	router := NewRouter(intake, reader, exporter, nil, 16, TrafficLimits{})

	body, contentType := multipartUpload(t, "big.txt", bytes.Repeat([]byte("a"), 64))
	req := httptest.NewRequest(http.MethodPost, "/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
	if intake.gotData != nil {
		t.Fatal("oversized upload must not reach the pipeline")
	}
}

func TestUploadResumeErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not a resume", domain.WrapError(domain.ErrNotAResume, "name gate", errors.New("no usable name")), http.StatusBadRequest},
		{"unsupported format", domain.ErrUnsupportedFormat, http.StatusBadRequest},
		{"no text", domain.ErrNoTextContent, http.StatusBadRequest},
		{"temporary", domain.ErrTemporary, http.StatusServiceUnavailable},
		{"assembly", domain.ErrAssembly, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestRouter(&intakeFake{err: tc.err}, nil).Handler()

			body, contentType := multipartUpload(t, "jane.txt", []byte("content"))
			req := httptest.NewRequest(http.MethodPost, "/v1/resumes", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetResumeByID(t *testing.T) {
	reader := &readerFake{records: map[string]*domain.Resume{
		"r1": {ID: "r1", FileName: "jane.pdf", Status: domain.StatusProcessing},
	}}
	handler := newTestRouter(&intakeFake{}, reader).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes/r1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["id"] != "r1" || resp["status"] != "processing" {
		t.Fatalf("unexpected body: %v", resp)
	}
	if _, ok := resp["rawText"]; ok {
		t.Fatal("raw text must not leak from the metadata endpoint")
	}
}

func TestGetResumeUnknownID(t *testing.T) {
	handler := newTestRouter(&intakeFake{}, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes/absent", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestResumeSummaryByStatus(t *testing.T) {
	reader := &readerFake{records: map[string]*domain.Resume{
		"processing": {ID: "processing", Status: domain.StatusProcessing},
		"errored":    {ID: "errored", Status: domain.StatusError},
		"done": {
			ID:       "done",
			FileName: "jane.pdf",
			RawText:  "the raw resume text",
			Status:   domain.StatusCompleted,
			Profile:  &domain.Profile{Name: "Jane Doe", CurrentRole: "Engineer", Summary: "s", Skills: []string{}, Education: []domain.Education{}},
		},
	}}
	handler := newTestRouter(&intakeFake{}, reader).Handler()

	get := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/resumes/"+id+"/summary", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := get("processing"); rec.Code != http.StatusAccepted {
		t.Fatalf("processing: expected 202, got %d", rec.Code)
	}
	if rec := get("errored"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("errored: expected 500, got %d", rec.Code)
	}
	if rec := get("absent"); rec.Code != http.StatusNotFound {
		t.Fatalf("absent: expected 404, got %d", rec.Code)
	}

	rec := get("done")
	if rec.Code != http.StatusOK {
		t.Fatalf("done: expected 200, got %d", rec.Code)
	}
	var resp summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if resp.Profile == nil || resp.Profile.Name != "Jane Doe" {
		t.Fatalf("unexpected profile: %+v", resp.Profile)
	}
	if resp.RawText != "the raw resume text" {
		t.Fatalf("summary must include raw text, got %q", resp.RawText)
	}
}

func TestExportEndpointServesWorkbook(t *testing.T) {
	handler := newTestRouter(&intakeFake{}, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes/export", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected workbook bytes")
	}
}

func TestHealthz(t *testing.T) {
	handler := newTestRouter(&intakeFake{}, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
