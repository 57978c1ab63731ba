package httpadapter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gridrez/resume-parser/internal/core/domain"
	"github.com/gridrez/resume-parser/internal/core/ports"
	"github.com/gridrez/resume-parser/internal/export"
	"github.com/gridrez/resume-parser/internal/observability/metrics"
)

// TrafficLimits bounds the inbound surface. Zero values disable the
// corresponding middleware.
type TrafficLimits struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int
}

type Router struct {
	intake         ports.ResumeIntake
	reader         ports.ResumeReader
	exporter       *export.Service
	metrics        *metrics.Metrics
	maxUploadBytes int64
	limits         TrafficLimits
}

func NewRouter(
	intake ports.ResumeIntake,
	reader ports.ResumeReader,
	exporter *export.Service,
	m *metrics.Metrics,
	maxUploadBytes int64,
	limits TrafficLimits,
) *Router {
	return &Router{
		intake:         intake,
		reader:         reader,
		exporter:       exporter,
		metrics:        m,
		maxUploadBytes: maxUploadBytes,
		limits:         limits,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	mux.HandleFunc("/v1/resumes", rt.uploadResume)
	mux.HandleFunc("/v1/resumes/", rt.resumeSubroutes)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	handler = backpressureMiddleware(rt.limits.MaxInFlight, handler)
	handler = rateLimitMiddleware(rt.limits.RateLimitRPS, rt.limits.RateLimitBurst, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type uploadResponse struct {
	ID         string              `json:"id"`
	FileName   string              `json:"fileName"`
	UploadDate time.Time           `json:"uploadDate"`
	Status     domain.ResumeStatus `json:"status"`
}

func (rt *Router) uploadResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, rt.maxUploadBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read upload: " + err.Error()})
		return
	}
	if int64(len(data)) > rt.maxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
			"error": fmt.Sprintf("file exceeds %d bytes", rt.maxUploadBytes),
		})
		return
	}

	format := formatFromFileName(fileHeader.Filename)
	rec, err := rt.intake.Upload(r.Context(), fileHeader.Filename, format, data)
	if err != nil {
		// Rejections before a record exists are not parse outcomes.
		if !domain.IsKind(err, domain.ErrUnsupportedFormat) &&
			!domain.IsKind(err, domain.ErrNoTextContent) &&
			!domain.IsKind(err, domain.ErrInvalidInput) {
			rt.metrics.RecordParse(string(domain.StatusError))
		}
		writeError(w, err)
		return
	}
	rt.metrics.RecordUpload(string(format))
	rt.metrics.RecordParse(string(rec.Status))

	// A dedup hit returns the first completed record, but the response
	// carries the name the caller just submitted.
	writeJSON(w, http.StatusOK, uploadResponse{
		ID:         rec.ID,
		FileName:   fileHeader.Filename,
		UploadDate: rec.CreatedAt,
		Status:     rec.Status,
	})
}

func (rt *Router) resumeSubroutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/resumes/")
	switch {
	case path == "export":
		rt.exportProfiles(w, r)
	case strings.HasSuffix(path, "/summary"):
		rt.resumeSummary(w, r, strings.TrimSuffix(path, "/summary"))
	case path != "" && !strings.Contains(path, "/"):
		rt.getResume(w, r, path)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (rt *Router) getResume(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type summaryResponse struct {
	ID         string              `json:"id"`
	FileName   string              `json:"fileName"`
	UploadDate time.Time           `json:"uploadDate"`
	Status     domain.ResumeStatus `json:"status"`
	Profile    *domain.Profile     `json:"profile"`
	RawText    string              `json:"rawText"`
}

func (rt *Router) resumeSummary(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	switch rec.Status {
	case domain.StatusProcessing:
		writeJSON(w, http.StatusAccepted, map[string]string{
			"id":     rec.ID,
			"status": string(rec.Status),
		})
	case domain.StatusError:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"id":    rec.ID,
			"error": "resume processing failed",
		})
	default:
		writeJSON(w, http.StatusOK, summaryResponse{
			ID:         rec.ID,
			FileName:   rec.FileName,
			UploadDate: rec.CreatedAt,
			Status:     rec.Status,
			Profile:    rec.Profile,
			RawText:    rec.RawText,
		})
	}
}

func (rt *Router) exportProfiles(w http.ResponseWriter, r *http.Request) {
	data, err := rt.exporter.ExportProfilesXLSX(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="profiles.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// formatFromFileName maps the upload extension onto a pipeline format. An
// unknown extension passes through untouched; the extractor rejects it with
// the supported set in the message.
func formatFromFileName(name string) domain.FileFormat {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return domain.FileFormat(ext)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
