package ports

import (
	"context"

	"github.com/gridrez/resume-parser/internal/core/domain"
)

// ResumeStore holds per-document state keyed by identifier. It does not
// police status-transition legality; the parse use case is its sole writer.
type ResumeStore interface {
	Create(ctx context.Context, rec *domain.Resume) error
	GetByID(ctx context.Context, id string) (*domain.Resume, error)
	List(ctx context.Context) ([]*domain.Resume, error)
	SetProfile(ctx context.Context, id string, profile *domain.Profile, status domain.ResumeStatus) (*domain.Resume, error)
	SetStatus(ctx context.Context, id string, status domain.ResumeStatus) (*domain.Resume, error)
}

// FingerprintCache maps a hash of normalized extracted text to the resume id
// that first completed for that text.
type FingerprintCache interface {
	Fingerprint(text string) string
	Lookup(fingerprint string) (string, bool)
	Insert(fingerprint, id string)
}

// TextExtractor turns raw uploaded bytes into a normalized text blob,
// tolerating faults in individual units (pages, tables) as long as some
// content survives.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, format domain.FileFormat) (domain.ExtractionResult, error)
}

// ProfileExtractor is the inference capability: given resume text, return a
// best-effort structured profile constrained by the declared schema, or fail
// with a *domain.SchemaViolation when the output does not conform.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, text string) (*domain.ExtractedProfile, error)
}

// EventPublisher announces terminal parse outcomes to interested consumers.
type EventPublisher interface {
	PublishResumeParsed(ctx context.Context, id string, status domain.ResumeStatus) error
}
