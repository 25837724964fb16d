// Package job implements job posting management for recruiters and posting
// search for job seekers.
package job

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/TalentMatch-AI/internal/domain/identity"
	domjob "github.com/turtacn/TalentMatch-AI/internal/domain/job"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// Cache is the read-through cache surface for posting lookups.
type Cache interface {
	GetOrSet(ctx context.Context, key string, dest any, loader func(ctx context.Context) (any, error)) error
	Delete(ctx context.Context, keys ...string) error
	BuildKey(parts ...string) string
}

// Service manages job postings.
type Service struct {
	repo  domjob.Repository
	cache Cache
	log   logging.Logger
}

// NewService wires a job Service.  cache may be nil in tests; lookups then go
// straight to the repository.
func NewService(repo domjob.Repository, cache Cache, log logging.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log.Named("job")}
}

// Create validates and stores a new posting owned by the caller.
func (s *Service) Create(ctx context.Context, ident identity.Identity, p *domjob.Posting) (*domjob.Posting, error) {
	if !ident.IsRecruiter() {
		return nil, appErrors.Forbidden("creating postings requires a recruiter role")
	}
	if p.Title == "" {
		return nil, appErrors.Validation("title is required")
	}
	if p.SalaryMin > 0 && p.SalaryMax > 0 && p.SalaryMin > p.SalaryMax {
		return nil, appErrors.Validation("salary_min exceeds salary_max")
	}
	p.RecruiterID = ident.UserID
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns one posting, read through the cache when available.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domjob.Posting, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}
	var p domjob.Posting
	err := s.cache.GetOrSet(ctx, s.cache.BuildKey("job", id.String()), &p,
		func(ctx context.Context) (any, error) {
			return s.repo.GetByID(ctx, id)
		})
	if err != nil {
		if appErrors.GetCode(err) == appErrors.ErrCodeNotFound {
			return nil, appErrors.New(appErrors.ErrCodeJobNotFound, "job posting not found")
		}
		return nil, err
	}
	return &p, nil
}

// ListMine returns the caller's postings.
func (s *Service) ListMine(ctx context.Context, ident identity.Identity) ([]domjob.Posting, error) {
	if !ident.IsRecruiter() {
		return nil, appErrors.Forbidden("listing own postings requires a recruiter role")
	}
	return s.repo.ListByRecruiter(ctx, ident.UserID)
}

// Search returns open postings matching the filter.
func (s *Service) Search(ctx context.Context, f domjob.SearchFilter) ([]domjob.Posting, error) {
	return s.repo.ListOpen(ctx, f)
}

// Update rewrites a posting the caller owns and invalidates its cache entry.
func (s *Service) Update(ctx context.Context, ident identity.Identity, p *domjob.Posting) (*domjob.Posting, error) {
	if _, err := s.owned(ctx, ident, p.ID); err != nil {
		return nil, err
	}
	p.RecruiterID = ident.UserID
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.ID)
	return p, nil
}

// Close marks a posting closed.
func (s *Service) Close(ctx context.Context, ident identity.Identity, id uuid.UUID) error {
	current, err := s.owned(ctx, ident, id)
	if err != nil {
		return err
	}
	if current.Status == domjob.StatusClosed {
		return appErrors.New(appErrors.ErrCodeJobClosed, "job posting is already closed")
	}
	current.Status = domjob.StatusClosed
	if err := s.repo.Update(ctx, current); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Delete removes a posting the caller owns.
func (s *Service) Delete(ctx context.Context, ident identity.Identity, id uuid.UUID) error {
	if _, err := s.owned(ctx, ident, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) owned(ctx context.Context, ident identity.Identity, id uuid.UUID) (*domjob.Posting, error) {
	if !ident.IsRecruiter() {
		return nil, appErrors.Forbidden("modifying postings requires a recruiter role")
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.OwnedBy(ident.UserID) && ident.Role != identity.RoleAdmin {
		return nil, appErrors.New(appErrors.ErrCodeNotJobOwner, "caller does not own this job posting")
	}
	return current, nil
}

func (s *Service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cache.BuildKey("job", id.String())); err != nil {
		s.log.Warn("cache invalidation failed",
			logging.String("job_id", id.String()), logging.Err(err))
	}
}
