// Package recommendation aggregates AI-generated job recommendations with
// persisted history, and runs the skill-gap and career-path analyses.
package recommendation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/TalentMatch-AI/internal/domain/identity"
	"github.com/turtacn/TalentMatch-AI/internal/domain/job"
	domrec "github.com/turtacn/TalentMatch-AI/internal/domain/recommendation"
	"github.com/turtacn/TalentMatch-AI/internal/domain/resume"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	prommetrics "github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/TalentMatch-AI/internal/intelligence/oracle"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// Oracle is the subset of the AI client used by recommendations.
type Oracle interface {
	RecommendJobs(ctx context.Context, req oracle.RecommendJobsRequest) (oracle.RawResult, error)
	SkillGap(ctx context.Context, req oracle.SkillGapRequest) (oracle.RawResult, error)
	CareerPath(ctx context.Context, req oracle.CareerPathRequest) (oracle.RawResult, error)
}

// Locker serializes writes touching one job seeker.
type Locker interface {
	WithJobSeekerLock(ctx context.Context, jobSeekerID string, fn func(ctx context.Context) error) error
}

// Options tunes a recommendation pass.
type Options struct {
	UseSemantic  bool
	ContextAware bool
	Max          int
}

// Service aggregates recommendations.
type Service struct {
	oracle  Oracle
	recs    domrec.Repository
	resumes resume.Repository
	jobs    job.Repository
	locks   Locker
	events  kafka.Producer
	metrics *prommetrics.Metrics
	log     logging.Logger
}

// NewService wires a recommendation Service.
func NewService(
	o Oracle,
	recs domrec.Repository,
	resumes resume.Repository,
	jobs job.Repository,
	locks Locker,
	events kafka.Producer,
	metrics *prommetrics.Metrics,
	log logging.Logger,
) *Service {
	return &Service{
		oracle:  o,
		recs:    recs,
		resumes: resumes,
		jobs:    jobs,
		locks:   locks,
		events:  events,
		metrics: metrics,
		log:     log.Named("recommendation"),
	}
}

// Recommend runs a scoring pass for the job seeker and returns the persisted
// history ordered by score descending.
//
// The AI call is best-effort: when it fails or the job seeker has no parsed
// primary resume, the existing history is still returned so the caller always
// sees whatever recommendations have accumulated.  New results are appended,
// never deduplicated against earlier passes.
func (s *Service) Recommend(ctx context.Context, ident identity.Identity, jobSeekerID uuid.UUID, opts Options) ([]domrec.Recommendation, error) {
	if !ident.CanActFor(jobSeekerID) {
		return nil, appErrors.Forbidden("cannot request recommendations for another job seeker")
	}

	if err := s.refreshFromOracle(ctx, jobSeekerID, opts); err != nil {
		if s.metrics != nil {
			s.metrics.RecommendationFallbacks.Inc()
		}
		s.log.Warn("recommendation refresh failed, serving persisted history",
			logging.String("job_seeker_id", jobSeekerID.String()),
			logging.Err(err))
	}

	return s.recs.ListByJobSeeker(ctx, jobSeekerID)
}

// History returns the persisted history without contacting the AI service.
func (s *Service) History(ctx context.Context, ident identity.Identity, jobSeekerID uuid.UUID) ([]domrec.Recommendation, error) {
	if !ident.CanActFor(jobSeekerID) {
		return nil, appErrors.Forbidden("cannot read another job seeker's recommendations")
	}
	return s.recs.ListByJobSeeker(ctx, jobSeekerID)
}

// ClearHistory deletes all persisted recommendations for the job seeker.
func (s *Service) ClearHistory(ctx context.Context, ident identity.Identity, jobSeekerID uuid.UUID) error {
	if !ident.CanActFor(jobSeekerID) {
		return appErrors.Forbidden("cannot clear another job seeker's recommendations")
	}
	return s.locks.WithJobSeekerLock(ctx, jobSeekerID.String(), func(ctx context.Context) error {
		return s.recs.DeleteByJobSeeker(ctx, jobSeekerID)
	})
}

// refreshFromOracle performs one scoring pass and appends the results.
func (s *Service) refreshFromOracle(ctx context.Context, jobSeekerID uuid.UUID, opts Options) error {
	primary, err := s.resumes.GetPrimaryByJobSeeker(ctx, jobSeekerID)
	if err != nil {
		return err
	}
	if !primary.HasParsedContent() {
		return appErrors.New(appErrors.ErrCodeNoPrimaryResume, "primary resume has no parsed content")
	}

	open, err := s.jobs.ListOpen(ctx, job.SearchFilter{Limit: 100})
	if err != nil {
		return err
	}
	if len(open) == 0 {
		return nil
	}

	descriptors := make([]oracle.JobDescriptor, 0, len(open))
	byID := make(map[string]job.Posting, len(open))
	for _, p := range open {
		descriptors = append(descriptors, oracle.JobDescriptor{
			JobID:        p.ID.String(),
			Title:        p.Title,
			Company:      p.Company,
			Description:  p.Description,
			Requirements: p.Requirements,
			Skills:       p.Skills,
		})
		byID[p.ID.String()] = p
	}

	raw, err := s.oracle.RecommendJobs(ctx, oracle.RecommendJobsRequest{
		JobSeekerID:    jobSeekerID.String(),
		ResumeContent:  primary.ParsedContent,
		OpenJobs:       descriptors,
		UseSemantic:    opts.UseSemantic,
		ContextAware:   opts.ContextAware,
		MaxSuggestions: opts.Max,
	})
	if err != nil {
		return err
	}
	if raw.Empty {
		return nil
	}

	var resp oracle.RecommendResponse
	if err := raw.Decode(&resp); err != nil {
		return err
	}

	postingID, posting := s.resolvePosting(ctx, byID, resp.JobPostingID)
	fresh := s.normalize(jobSeekerID, postingID, posting, resp.Jobs)
	if len(fresh) == 0 {
		return nil
	}

	err = s.locks.WithJobSeekerLock(ctx, jobSeekerID.String(), func(ctx context.Context) error {
		return s.recs.SaveBatch(ctx, fresh)
	})
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecommendationsPersisted.Add(float64(len(fresh)))
	}
	s.publishPersisted(ctx, jobSeekerID, len(fresh))
	return nil
}

// resolvePosting maps the response's optional top-level posting reference to
// a known posting.  An unparseable or unknown reference is logged and
// treated as absent; entries then persist without a posting link.
func (s *Service) resolvePosting(ctx context.Context, byID map[string]job.Posting, ref *string) (*uuid.UUID, *job.Posting) {
	if ref == nil || *ref == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*ref)
	if err != nil {
		s.log.Warn("recommendation payload has invalid job posting id",
			logging.String("job_posting_id", *ref))
		return nil, nil
	}
	if p, ok := byID[id.String()]; ok {
		return &id, &p
	}
	p, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		s.log.Warn("recommendation payload references unknown job posting",
			logging.String("job_posting_id", *ref), logging.Err(err))
		return &id, nil
	}
	return &id, p
}

// normalize converts suggestions into rows.  Entries have no posting ID of
// their own; the resolved top-level reference, when present, applies to all
// of them.  An entry carrying none of the recognized fields is logged and
// skipped; everything else persists, including entries without any posting
// link.  Each row keeps the entry's verbatim JSON.
func (s *Service) normalize(jobSeekerID uuid.UUID, jobID *uuid.UUID, posting *job.Posting, entries []oracle.RecommendedJob) []domrec.Recommendation {
	now := time.Now().UTC()
	out := make([]domrec.Recommendation, 0, len(entries))
	for i, e := range entries {
		if e.Title == nil && e.Company == nil && e.Reason == nil && e.Score == nil {
			s.log.Warn("recommendation entry has no usable fields, skipped", logging.Int("index", i))
			continue
		}
		rec := domrec.Recommendation{
			ID:          uuid.New(),
			JobSeekerID: jobSeekerID,
			JobID:       jobID,
			RawData:     string(e.Raw),
			CreatedAt:   now,
		}
		if e.Score != nil {
			rec.MatchScore = *e.Score
		}
		if e.Reason != nil {
			rec.Reason = *e.Reason
		}
		if e.Title != nil {
			rec.JobTitle = *e.Title
		}
		if e.Company != nil {
			rec.Company = *e.Company
		}
		if posting != nil {
			if rec.JobTitle == "" {
				rec.JobTitle = posting.Title
			}
			if rec.Company == "" {
				rec.Company = posting.Company
			}
		}
		out = append(out, rec)
	}
	return out
}

// SkillGap analyses the job seeker's primary resume against one job posting.
// It fails with a not-found error before contacting the AI service when the
// posting is unknown or no parsed primary resume exists.  Absent response
// sections default to empty slices and a zero match percentage.
func (s *Service) SkillGap(ctx context.Context, ident identity.Identity, jobSeekerID, jobID uuid.UUID) (*domrec.SkillGap, error) {
	if !ident.CanActFor(jobSeekerID) {
		return nil, appErrors.Forbidden("cannot analyse another job seeker's profile")
	}
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	primary, err := s.resumes.GetPrimaryByJobSeeker(ctx, jobSeekerID)
	if err != nil {
		return nil, err
	}
	if !primary.HasParsedContent() {
		return nil, appErrors.New(appErrors.ErrCodeNoPrimaryResume, "primary resume has no parsed content")
	}

	raw, err := s.oracle.SkillGap(ctx, oracle.SkillGapRequest{
		ResumeContent: primary.ParsedContent,
		JobID:         jobID.String(),
	})
	if err != nil {
		return nil, err
	}

	gap := &domrec.SkillGap{
		JobID:             jobID,
		MissingSkills:     []string{},
		MatchingSkills:    []string{},
		LearningResources: []map[string]string{},
	}
	if raw.Empty {
		return gap, nil
	}

	var resp oracle.SkillGapResponse
	if err := raw.Decode(&resp); err != nil {
		return nil, err
	}
	if resp.MissingSkills != nil {
		gap.MissingSkills = resp.MissingSkills
	}
	if resp.MatchingSkills != nil {
		gap.MatchingSkills = resp.MatchingSkills
	}
	for _, entry := range resp.LearningResources {
		gap.LearningResources = append(gap.LearningResources, stringifyFields(entry))
	}
	if resp.OverallMatch != nil {
		gap.OverallMatch = *resp.OverallMatch
	}
	return gap, nil
}

// stringifyFields flattens a loosely typed resource entry into string fields.
func stringifyFields(entry map[string]any) map[string]string {
	out := make(map[string]string, len(entry))
	for k, v := range entry {
		switch val := v.(type) {
		case string:
			out[k] = val
		case nil:
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

// CareerPath suggests career progressions from the job seeker's primary resume.
func (s *Service) CareerPath(ctx context.Context, ident identity.Identity, jobSeekerID uuid.UUID) ([]domrec.CareerPath, error) {
	if !ident.CanActFor(jobSeekerID) {
		return nil, appErrors.Forbidden("cannot analyse another job seeker's profile")
	}
	primary, err := s.resumes.GetPrimaryByJobSeeker(ctx, jobSeekerID)
	if err != nil {
		return nil, err
	}
	if !primary.HasParsedContent() {
		return nil, appErrors.New(appErrors.ErrCodeNoPrimaryResume, "primary resume has no parsed content")
	}

	raw, err := s.oracle.CareerPath(ctx, oracle.CareerPathRequest{
		JobSeekerID:   jobSeekerID.String(),
		ResumeContent: primary.ParsedContent,
	})
	if err != nil {
		return nil, err
	}
	if raw.Empty {
		return []domrec.CareerPath{}, nil
	}

	var resp oracle.CareerPathResponse
	if err := raw.Decode(&resp); err != nil {
		return nil, err
	}
	paths := make([]domrec.CareerPath, 0, len(resp.CareerPaths))
	for _, entry := range resp.CareerPaths {
		if entry.Title == nil || *entry.Title == "" {
			continue
		}
		path := domrec.CareerPath{Title: *entry.Title, RequiredSkills: []string{}}
		if entry.Description != nil {
			path.Description = *entry.Description
		}
		if entry.RequiredSkills != nil {
			path.RequiredSkills = entry.RequiredSkills
		}
		if entry.GrowthPotential != nil {
			path.GrowthPotential = *entry.GrowthPotential
		}
		if entry.TimeToAchieve != nil {
			path.TimeToAchieve = *entry.TimeToAchieve
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *Service) publishPersisted(ctx context.Context, jobSeekerID uuid.UUID, count int) {
	err := s.events.Publish(ctx, kafka.TopicRecommendationPersisted, jobSeekerID.String(),
		kafka.RecommendationPersistedEvent{
			JobSeekerID:   jobSeekerID.String(),
			Count:         count,
			PersistedAtMS: time.Now().UnixMilli(),
		})
	if err != nil {
		s.log.Warn("recommendation event publish failed", logging.Err(err))
	}
}
