package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/gridrez/resume-parser/internal/core/domain"
	"github.com/gridrez/resume-parser/internal/core/ports"
)

// DefaultMinTextChars rejects extractions too short to be a resume.
const DefaultMinTextChars = 50

// IntakeResumeUseCase composes the pipeline: text extraction, fingerprint
// dedup, record creation, and the parse orchestrator. A fingerprint cache hit
// short-circuits the whole pipeline and returns the first completed record,
// original createdAt included.
type IntakeResumeUseCase struct {
	extractor    ports.TextExtractor
	cache        ports.FingerprintCache
	store        ports.ResumeStore
	parser       ports.ResumeParser
	events       ports.EventPublisher
	minTextChars int
	logger       *slog.Logger
}

func NewIntakeResumeUseCase(
	extractor ports.TextExtractor,
	cache ports.FingerprintCache,
	store ports.ResumeStore,
	parser ports.ResumeParser,
	events ports.EventPublisher,
	minTextChars int,
	logger *slog.Logger,
) *IntakeResumeUseCase {
	if minTextChars <= 0 {
		minTextChars = DefaultMinTextChars
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IntakeResumeUseCase{
		extractor:    extractor,
		cache:        cache,
		store:        store,
		parser:       parser,
		events:       events,
		minTextChars: minTextChars,
		logger:       logger,
	}
}

func (uc *IntakeResumeUseCase) Upload(ctx context.Context, fileName string, format domain.FileFormat, data []byte) (*domain.Resume, error) {
	extraction, err := uc.extractor.Extract(ctx, data, format)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	for _, warning := range extraction.Warnings {
		uc.logger.Warn("extraction_warning", "file_name", fileName, "format", string(format), "warning", warning)
	}

	text := strings.TrimSpace(extraction.Text)
	if n := utf8.RuneCountInString(text); n < uc.minTextChars {
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"validate extracted text",
			fmt.Errorf("%d chars extracted, need at least %d", n, uc.minTextChars),
		)
	}

	fingerprint := uc.cache.Fingerprint(text)
	if rec, ok := uc.lookupCompleted(ctx, fingerprint); ok {
		uc.logger.Info("fingerprint_cache_hit", "resume_id", rec.ID, "file_name", fileName)
		return rec, nil
	}

	rec := &domain.Resume{
		ID:        uuid.NewString(),
		FileName:  fileName,
		RawText:   text,
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	profile, err := uc.parser.Parse(ctx, rec.ID, text)
	if err != nil {
		uc.publish(ctx, rec.ID, domain.StatusError)
		return nil, err
	}

	// Insert only after the completed transition has been observed, so cache
	// entries never point at unfinished or failed records.
	uc.cache.Insert(fingerprint, rec.ID)
	uc.publish(ctx, rec.ID, domain.StatusCompleted)

	rec.Status = domain.StatusCompleted
	rec.Profile = profile
	return rec, nil
}

// lookupCompleted resolves a fingerprint to its record and verifies the
// record actually reached completed with a profile; a dangling or unfinished
// entry falls through to a fresh parse.
func (uc *IntakeResumeUseCase) lookupCompleted(ctx context.Context, fingerprint string) (*domain.Resume, bool) {
	id, ok := uc.cache.Lookup(fingerprint)
	if !ok {
		return nil, false
	}
	rec, err := uc.store.GetByID(ctx, id)
	if err != nil || rec.Status != domain.StatusCompleted || rec.Profile == nil {
		return nil, false
	}
	return rec, true
}

func (uc *IntakeResumeUseCase) publish(ctx context.Context, id string, status domain.ResumeStatus) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishResumeParsed(ctx, id, status); err != nil {
		uc.logger.Warn("publish_lifecycle_event", "resume_id", id, "status", string(status), "error", err)
	}
}
