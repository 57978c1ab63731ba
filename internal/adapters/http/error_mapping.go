package httpadapter

import (
	"net/http"

	"github.com/gridrez/resume-parser/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput),
		domain.IsKind(err, domain.ErrUnsupportedFormat),
		domain.IsKind(err, domain.ErrNoTextContent),
		domain.IsKind(err, domain.ErrNotAResume):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrResumeNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
