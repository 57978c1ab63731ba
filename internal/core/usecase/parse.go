package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gridrez/resume-parser/internal/core/domain"
	"github.com/gridrez/resume-parser/internal/core/ports"
)

// Fallback strings for required profile fields the inference step could not
// determine. The name field never gets a fallback: a missing name means the
// document is not a resume.
const (
	FallbackRole    = "Not specified"
	FallbackSummary = "No summary available"
)

// ParseResumeUseCase drives a single record through its state machine:
// processing -> completed on success, processing -> error on any failure.
// Terminal states are final; a retry requires a fresh intake with a new id.
type ParseResumeUseCase struct {
	store  ports.ResumeStore
	llm    ports.ProfileExtractor
	logger *slog.Logger
}

func NewParseResumeUseCase(store ports.ResumeStore, llm ports.ProfileExtractor, logger *slog.Logger) *ParseResumeUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParseResumeUseCase{store: store, llm: llm, logger: logger}
}

// Parse invokes the inference capability on text, normalizes the output into
// a complete profile, and transitions the record identified by id exactly
// once. The fingerprint cache is deliberately not touched here; the caller
// inserts only after observing a completed result.
func (uc *ParseResumeUseCase) Parse(ctx context.Context, id, text string) (*domain.Profile, error) {
	raw, err := uc.llm.ExtractProfile(ctx, text)
	if err != nil {
		return nil, uc.fail(ctx, id, classifyInferenceError(err))
	}

	if name, ok := usableName(raw.Name); !ok {
		return nil, uc.fail(ctx, id, domain.WrapError(
			domain.ErrNotAResume,
			"name gate",
			fmt.Errorf("extracted name %q is unusable", name),
		))
	}

	profile := assembleProfile(raw)
	if err := profile.Validate(); err != nil {
		uc.logger.Warn("profile_assembly_degraded", "resume_id", id, "cause", err)
		stripOptionalFields(profile)
		if retryErr := profile.Validate(); retryErr != nil {
			return nil, uc.fail(ctx, id, domain.WrapError(domain.ErrAssembly, "assemble profile", retryErr))
		}
	}

	if _, err := uc.store.SetProfile(ctx, id, profile, domain.StatusCompleted); err != nil {
		return nil, fmt.Errorf("set status=completed: %w", err)
	}
	return profile, nil
}

func (uc *ParseResumeUseCase) fail(ctx context.Context, id string, parseErr error) error {
	if _, statusErr := uc.store.SetStatus(ctx, id, domain.StatusError); statusErr != nil {
		return fmt.Errorf("%w; mark error status: %v", parseErr, statusErr)
	}
	return parseErr
}

// classifyInferenceError maps inference failures onto the error taxonomy.
// Schema violations mean the output was structurally unusable, which is
// definitive evidence the source is not a parsable resume. Anything else
// stays an opaque internal failure and must not read like a content problem.
func classifyInferenceError(err error) error {
	var violation *domain.SchemaViolation
	if errors.As(err, &violation) {
		if violation.Field == "name" {
			return domain.WrapError(domain.ErrNotAResume, "inference output has no usable name", err)
		}
		return domain.WrapError(domain.ErrNotAResume, "inference output failed schema check", err)
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	return fmt.Errorf("extract profile: %w", err)
}

// usableName reports whether the extracted name passes the resume gate:
// present, non-empty after trimming, and not the literal placeholder "null".
func usableName(name *string) (string, bool) {
	if name == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return trimmed, false
	}
	return trimmed, true
}

func assembleProfile(raw *domain.ExtractedProfile) *domain.Profile {
	name, _ := usableName(raw.Name)

	profile := &domain.Profile{
		Name:            name,
		CurrentRole:     stringOrFallback(raw.CurrentRole, FallbackRole),
		Summary:         stringOrFallback(raw.Summary, FallbackSummary),
		ExperienceYears: intOrZero(raw.ExperienceYears),
		Skills:          raw.Skills,
		Education:       raw.Education,
		Email:           normalizeOptional(raw.Email),
		Phone:           normalizeOptional(raw.Phone),
		Location:        normalizeOptional(raw.Location),
		SocialHandles:   buildSocialHandles(raw.SocialHandles),
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.Education == nil {
		profile.Education = []domain.Education{}
	}
	return profile
}

// buildSocialHandles trims every sub-field, filters blank entries out of
// Other, and returns nil unless at least one sub-field survives. It never
// fails the overall assembly.
func buildSocialHandles(raw *domain.SocialHandles) *domain.SocialHandles {
	if raw == nil {
		return nil
	}
	handles := &domain.SocialHandles{
		LinkedIn:  normalizeOptional(raw.LinkedIn),
		GitHub:    normalizeOptional(raw.GitHub),
		Twitter:   normalizeOptional(raw.Twitter),
		Portfolio: normalizeOptional(raw.Portfolio),
	}
	for _, entry := range raw.Other {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			handles.Other = append(handles.Other, trimmed)
		}
	}
	if handles.Empty() {
		return nil
	}
	return handles
}

// stripOptionalFields is the degraded assembly path: optional fields forced
// to null so a structurally salvageable profile can still complete.
func stripOptionalFields(profile *domain.Profile) {
	profile.Email = nil
	profile.Phone = nil
	profile.Location = nil
	profile.SocialHandles = nil
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func stringOrFallback(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
