package ports

import (
	"context"

	"github.com/gridrez/resume-parser/internal/core/domain"
)

// ResumeIntake is the inbound contract for upload orchestration: extract,
// dedup, parse, and return the resulting record.
type ResumeIntake interface {
	Upload(ctx context.Context, fileName string, format domain.FileFormat, data []byte) (*domain.Resume, error)
}

// ResumeParser drives one record through the processing state machine.
type ResumeParser interface {
	Parse(ctx context.Context, id, text string) (*domain.Profile, error)
}

// ResumeReader is the inbound read model for record state.
type ResumeReader interface {
	GetByID(ctx context.Context, id string) (*domain.Resume, error)
}
