// Package screening implements candidate screening and shortlisting for
// recruiters: it assembles the candidate pool, submits it to the AI service,
// normalizes the response, and ranks or clusters the results.
package screening

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/TalentMatch-AI/internal/domain/candidate"
	"github.com/turtacn/TalentMatch-AI/internal/domain/identity"
	"github.com/turtacn/TalentMatch-AI/internal/domain/job"
	"github.com/turtacn/TalentMatch-AI/internal/domain/jobseeker"
	"github.com/turtacn/TalentMatch-AI/internal/domain/resume"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	prommetrics "github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/TalentMatch-AI/internal/intelligence/oracle"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// Oracle is the subset of the AI client used by screening.
type Oracle interface {
	ScreenCandidates(ctx context.Context, req oracle.ScreenRequest) (oracle.RawResult, error)
}

// Request names a screening run: which posting, which candidates, and
// optionally a requirements override.  When Requirements is empty the
// posting's own requirements text is used.
type Request struct {
	CandidateIDs []uuid.UUID
	Requirements string
}

// Service runs screening passes.
type Service struct {
	oracle  Oracle
	jobs    job.Repository
	resumes resume.Repository
	seekers jobseeker.Repository
	events  kafka.Producer
	metrics *prommetrics.Metrics
	log     logging.Logger
}

// NewService wires a screening Service.
func NewService(
	o Oracle,
	jobs job.Repository,
	resumes resume.Repository,
	seekers jobseeker.Repository,
	events kafka.Producer,
	metrics *prommetrics.Metrics,
	log logging.Logger,
) *Service {
	return &Service{
		oracle:  o,
		jobs:    jobs,
		resumes: resumes,
		seekers: seekers,
		events:  events,
		metrics: metrics,
		log:     log.Named("screening"),
	}
}

// Screen scores the requested candidates against the posting and returns the
// normalized records ordered by match score descending.
//
// Pool assembly is forgiving: unknown candidate IDs and candidates without a
// parsed primary resume are skipped, not failed.  An empty final pool is an
// error because the AI service has nothing to score.
func (s *Service) Screen(ctx context.Context, ident identity.Identity, jobID uuid.UUID, req Request) ([]candidate.Record, error) {
	posting, err := s.authorizedPosting(ctx, ident, jobID)
	if err != nil {
		return nil, err
	}

	pool, skipped, err := s.assemblePool(ctx, req.CandidateIDs)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, appErrors.New(appErrors.ErrCodeScreeningEmptyPool,
			"no candidates with parsed resumes to screen")
	}
	if s.metrics != nil {
		s.metrics.ScreeningPoolSize.Observe(float64(len(pool)))
	}

	requirements := req.Requirements
	if requirements == "" {
		requirements = posting.Requirements
	}
	resumes := make(map[string]string, len(pool))
	for id, cand := range pool {
		resumes[id] = cand.resumeContent
	}

	raw, err := s.oracle.ScreenCandidates(ctx, oracle.ScreenRequest{
		Requirements: requirements,
		Resumes:      resumes,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeScreeningFailed, "screening call failed")
	}
	if raw.Empty {
		return []candidate.Record{}, nil
	}

	var resp oracle.ScreenResponse
	if err := raw.Decode(&resp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeScreeningFailed, "screening response unreadable")
	}

	records, dropped := s.normalize(resp, pool)
	s.publishCompleted(ctx, posting, len(pool), records, skipped+dropped)
	return records, nil
}

// ShortlistResult bundles one shortlist pass: how many candidates were
// screened in total, the ranked top slice, and that slice grouped by each
// candidate's first key skill.
type ShortlistResult struct {
	JobID         uuid.UUID                     `json:"jobPostingId"`
	TotalScreened int                           `json:"totalCandidatesScreened"`
	Shortlisted   []candidate.Record            `json:"shortlistedCandidates"`
	SkillClusters map[string][]candidate.Record `json:"skillClusters"`
}

// Shortlist screens, keeps the top candidates by score and clusters that
// shortlisted subset.  limit follows ranking semantics: non-positive yields
// an empty shortlist.
func (s *Service) Shortlist(ctx context.Context, ident identity.Identity, jobID uuid.UUID, req Request, limit int) (*ShortlistResult, error) {
	records, err := s.Screen(ctx, ident, jobID, req)
	if err != nil {
		return nil, err
	}
	top := candidate.Rank(records, limit)
	return &ShortlistResult{
		JobID:         jobID,
		TotalScreened: len(records),
		Shortlisted:   top,
		SkillClusters: candidate.GroupBySkill(top),
	}, nil
}

// ClusterBySkill screens and buckets the results by each candidate's first
// key skill.
func (s *Service) ClusterBySkill(ctx context.Context, ident identity.Identity, jobID uuid.UUID, req Request) (map[string][]candidate.Record, error) {
	records, err := s.Screen(ctx, ident, jobID, req)
	if err != nil {
		return nil, err
	}
	return candidate.GroupBySkill(records), nil
}

// authorizedPosting loads the posting and verifies the caller owns it.
func (s *Service) authorizedPosting(ctx context.Context, ident identity.Identity, jobID uuid.UUID) (*job.Posting, error) {
	if !ident.IsRecruiter() {
		return nil, appErrors.Forbidden("screening requires a recruiter role")
	}
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !posting.OwnedBy(ident.UserID) && ident.Role != identity.RoleAdmin {
		return nil, appErrors.New(appErrors.ErrCodeNotJobOwner, "caller does not own this job posting")
	}
	return posting, nil
}

// poolCandidate is one locally known candidate in an assembled pool: the
// profile supplies name and contact, the resume supplies scoring input.
type poolCandidate struct {
	profile       jobseeker.Profile
	resumeContent string
}

// assemblePool maps candidate IDs to their local profile and parsed primary
// resume content, skipping unknown IDs and candidates without parsed content.
// Returns the pool and the skip count.
func (s *Service) assemblePool(ctx context.Context, ids []uuid.UUID) (map[string]poolCandidate, int, error) {
	known, err := s.seekers.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	skipped := len(ids) - len(known)

	pool := make(map[string]poolCandidate, len(known))
	for _, id := range known {
		profile, err := s.seekers.GetByID(ctx, id)
		if err != nil {
			if appErrors.IsNotFound(err) {
				skipped++
				continue
			}
			return nil, 0, err
		}
		primary, err := s.resumes.GetPrimaryByJobSeeker(ctx, id)
		if err != nil {
			if appErrors.IsNotFound(err) {
				skipped++
				s.log.Debug("candidate skipped, no primary resume",
					logging.String("job_seeker_id", id.String()))
				continue
			}
			return nil, 0, err
		}
		if !primary.HasParsedContent() {
			skipped++
			continue
		}
		pool[id.String()] = poolCandidate{profile: *profile, resumeContent: primary.ParsedContent}
	}
	return pool, skipped, nil
}

// normalize converts response entries to domain records.  Entries whose
// candidate ID is not in the local pool are skipped; the AI service may
// reference stale or external identifiers.  Name and contact come from the
// local profile, never from the response.  Absent scores, rationales and
// cultural-fit values pass through as nil; list fields become empty slices
// and a negative or absent experience figure becomes zero.  Records come
// back ordered by effective score descending, candidate ID as tiebreak.
func (s *Service) normalize(entries oracle.ScreenResponse, pool map[string]poolCandidate) ([]candidate.Record, int) {
	records := make([]candidate.Record, 0, len(entries))
	dropped := 0
	for id, e := range entries {
		cand, ok := pool[id]
		if !ok {
			dropped++
			if s.metrics != nil {
				s.metrics.ScreeningSkippedEntries.Inc()
			}
			s.log.Warn("screening entry references unknown candidate, skipped",
				logging.String("candidate_id", id))
			continue
		}
		rec := candidate.Record{
			CandidateID: id,
			Name:        cand.profile.FullName,
			Contact:     cand.profile.Email,
			Score:       e.MatchScore,
			Rationale:   e.Rationale,
			KeySkills:   emptyIfNil(e.KeySkills),
			Strengths:   emptyIfNil(e.Strengths),
			Weaknesses:  emptyIfNil(e.Weaknesses),
			CulturalFit: e.CulturalFit,
		}
		if e.ExperienceYears != nil && *e.ExperienceYears > 0 {
			rec.ExperienceYears = *e.ExperienceYears
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		si, sj := records[i].EffectiveScore(), records[j].EffectiveScore()
		if si != sj {
			return si > sj
		}
		return records[i].CandidateID < records[j].CandidateID
	})
	return records, dropped
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (s *Service) publishCompleted(ctx context.Context, posting *job.Posting, poolSize int, records []candidate.Record, skipped int) {
	top := 0.0
	for _, r := range records {
		if sc := r.EffectiveScore(); sc > top {
			top = sc
		}
	}
	err := s.events.Publish(ctx, kafka.TopicScreeningCompleted, posting.ID.String(),
		kafka.ScreeningCompletedEvent{
			JobID:         posting.ID.String(),
			RecruiterID:   posting.RecruiterID.String(),
			PoolSize:      poolSize,
			ScoredCount:   len(records),
			SkippedCount:  skipped,
			TopScore:      top,
			CompletedAtMS: time.Now().UnixMilli(),
		})
	if err != nil {
		s.log.Warn("screening event publish failed", logging.Err(err))
	}
}
