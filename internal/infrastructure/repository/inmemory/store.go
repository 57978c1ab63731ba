// Package inmemory implements the resume store as a mutex-guarded map.
// Records live for the lifetime of the process.
package inmemory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/gridrez/resume-parser/internal/core/domain"
)

var errDuplicateID = errors.New("id already exists")

type ResumeStore struct {
	mu      sync.RWMutex
	records map[string]*domain.Resume
}

func NewResumeStore() *ResumeStore {
	return &ResumeStore{records: make(map[string]*domain.Resume)}
}

// cloneRecord copies the record and its profile so neither side can mutate
// the other through shared pointers.
func cloneRecord(rec *domain.Resume) *domain.Resume {
	out := *rec
	out.Profile = rec.Profile.Clone()
	return &out
}

func (s *ResumeStore) Create(ctx context.Context, rec *domain.Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; ok {
		return domain.WrapError(domain.ErrInvalidInput, "create resume", errDuplicateID)
	}
	s.records[rec.ID] = cloneRecord(rec)
	return nil
}

func (s *ResumeStore) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrResumeNotFound
	}
	return cloneRecord(rec), nil
}

// List returns copies of every record ordered by creation time, newest first.
func (s *ResumeStore) List(ctx context.Context) ([]*domain.Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Resume, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, cloneRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *ResumeStore) SetProfile(ctx context.Context, id string, profile *domain.Profile, status domain.ResumeStatus) (*domain.Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrResumeNotFound
	}
	rec.Profile = profile.Clone()
	rec.Status = status
	return cloneRecord(rec), nil
}

func (s *ResumeStore) SetStatus(ctx context.Context, id string, status domain.ResumeStatus) (*domain.Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrResumeNotFound
	}
	rec.Status = status
	return cloneRecord(rec), nil
}
