// Package sourcing implements recruiter-side candidate discovery: algorithmic
// matching, fit prediction, AI-driven pool clustering and hiring analytics.
package sourcing

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/TalentMatch-AI/internal/domain/identity"
	"github.com/turtacn/TalentMatch-AI/internal/domain/job"
	"github.com/turtacn/TalentMatch-AI/internal/domain/jobseeker"
	"github.com/turtacn/TalentMatch-AI/internal/domain/resume"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/TalentMatch-AI/internal/intelligence/oracle"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// Oracle is the subset of the AI client used by sourcing.
type Oracle interface {
	AdvancedMatch(ctx context.Context, req oracle.AdvancedMatchRequest) (oracle.RawResult, error)
	PredictFit(ctx context.Context, req oracle.PredictFitRequest) (oracle.RawResult, error)
	Cluster(ctx context.Context, req oracle.ClusterRequest) (oracle.RawResult, error)
	BusinessInsights(ctx context.Context, req oracle.InsightsRequest) (oracle.RawResult, error)
}

// Match is one scored candidate from an algorithmic matching pass.
type Match struct {
	CandidateID string  `json:"candidateId"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation,omitempty"`
}

// FitPrediction is a single-candidate fit assessment.
type FitPrediction struct {
	CandidateID string  `json:"candidateId"`
	FitScore    float64 `json:"fitScore"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation,omitempty"`
}

// SkillCluster is one AI-produced candidate grouping.
type SkillCluster struct {
	Label        string   `json:"label"`
	CandidateIDs []string `json:"candidateIds"`
	TopSkills    []string `json:"topSkills"`
}

// Insights is the hiring-funnel analytics payload.
type Insights struct {
	Summary        string             `json:"summary"`
	FunnelMetrics  map[string]float64 `json:"funnelMetrics"`
	TopSkillDemand []string           `json:"topSkillDemand"`
}

// supported matching algorithms.
const (
	AlgorithmTFIDF = "tfidf"
	AlgorithmBERT  = "bert"
)

// Service runs sourcing operations.
type Service struct {
	oracle  Oracle
	jobs    job.Repository
	resumes resume.Repository
	seekers jobseeker.Repository
	log     logging.Logger
}

// NewService wires a sourcing Service.
func NewService(o Oracle, jobs job.Repository, resumes resume.Repository, seekers jobseeker.Repository, log logging.Logger) *Service {
	return &Service{
		oracle:  o,
		jobs:    jobs,
		resumes: resumes,
		seekers: seekers,
		log:     log.Named("sourcing"),
	}
}

// AdvancedMatch scores the candidate pool against the posting with the chosen
// algorithm.  Results come back ordered by score descending.
func (s *Service) AdvancedMatch(ctx context.Context, ident identity.Identity, jobID uuid.UUID, candidateIDs []uuid.UUID, algorithm string) ([]Match, error) {
	if algorithm != AlgorithmTFIDF && algorithm != AlgorithmBERT {
		return nil, appErrors.InvalidParam("algorithm must be tfidf or bert")
	}
	posting, err := s.authorizedPosting(ctx, ident, jobID)
	if err != nil {
		return nil, err
	}
	ids, texts, err := s.assembleOrderedPool(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, appErrors.New(appErrors.ErrCodeScreeningEmptyPool,
			"no candidates with parsed resumes to match")
	}

	raw, err := s.oracle.AdvancedMatch(ctx, oracle.AdvancedMatchRequest{
		Job:       toDescriptor(posting),
		Resumes:   texts,
		Algorithm: algorithm,
	})
	if err != nil {
		return nil, err
	}
	if raw.Empty {
		return []Match{}, nil
	}

	var resp oracle.AdvancedMatchResponse
	if err := raw.Decode(&resp); err != nil {
		return nil, err
	}
	matches := make([]Match, 0, len(resp.Matches))
	for _, e := range resp.Matches {
		if e.Index == nil || *e.Index < 0 || *e.Index >= len(ids) {
			s.log.Warn("match entry index out of range, skipped")
			continue
		}
		m := Match{CandidateID: ids[*e.Index].String()}
		if e.Score != nil {
			m.Score = *e.Score
		}
		if e.Explanation != nil {
			m.Explanation = *e.Explanation
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// PredictFit assesses one candidate's fit for the posting.
func (s *Service) PredictFit(ctx context.Context, ident identity.Identity, jobID, candidateID uuid.UUID) (*FitPrediction, error) {
	posting, err := s.authorizedPosting(ctx, ident, jobID)
	if err != nil {
		return nil, err
	}
	primary, err := s.resumes.GetPrimaryByJobSeeker(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if !primary.HasParsedContent() {
		return nil, appErrors.New(appErrors.ErrCodeNoPrimaryResume, "candidate resume not parsed")
	}

	raw, err := s.oracle.PredictFit(ctx, oracle.PredictFitRequest{
		Job:           toDescriptor(posting),
		CandidateID:   candidateID.String(),
		ResumeContent: primary.ParsedContent,
	})
	if err != nil {
		return nil, err
	}
	if raw.Empty {
		return nil, appErrors.New(appErrors.ErrCodeOracleBadResponse, "fit prediction returned no payload")
	}

	var resp oracle.PredictFitResponse
	if err := raw.Decode(&resp); err != nil {
		return nil, err
	}
	pred := &FitPrediction{CandidateID: candidateID.String()}
	if resp.FitScore != nil {
		pred.FitScore = *resp.FitScore
	}
	if resp.Confidence != nil {
		pred.Confidence = *resp.Confidence
	}
	if resp.Explanation != nil {
		pred.Explanation = *resp.Explanation
	}
	return pred, nil
}

// ClusterPool groups the candidate pool by skill profile using the AI service.
func (s *Service) ClusterPool(ctx context.Context, ident identity.Identity, candidateIDs []uuid.UUID, numClusters int) ([]SkillCluster, error) {
	if !ident.IsRecruiter() {
		return nil, appErrors.Forbidden("candidate clustering requires a recruiter role")
	}
	pool, err := s.assemblePool(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, appErrors.New(appErrors.ErrCodeScreeningEmptyPool,
			"no candidates with parsed resumes to cluster")
	}

	raw, err := s.oracle.Cluster(ctx, oracle.ClusterRequest{
		Resumes:     pool,
		NumClusters: numClusters,
	})
	if err != nil {
		return nil, err
	}
	if raw.Empty {
		return []SkillCluster{}, nil
	}

	var resp oracle.ClusterResponse
	if err := raw.Decode(&resp); err != nil {
		return nil, err
	}
	clusters := make([]SkillCluster, 0, len(resp.Clusters))
	for _, g := range resp.Clusters {
		c := SkillCluster{
			Label:        "Other",
			CandidateIDs: g.CandidateIDs,
			TopSkills:    g.TopSkills,
		}
		if g.Label != nil && *g.Label != "" {
			c.Label = *g.Label
		}
		if c.CandidateIDs == nil {
			c.CandidateIDs = []string{}
		}
		if c.TopSkills == nil {
			c.TopSkills = []string{}
		}
		clusters = append(clusters, c)
	}
	return clusters, nil
}

// SearchPool finds candidate profiles matching a free-text query over name,
// headline and skills.  No AI call is involved.
func (s *Service) SearchPool(ctx context.Context, ident identity.Identity, f jobseeker.SearchFilter) ([]jobseeker.Profile, error) {
	if !ident.IsRecruiter() {
		return nil, appErrors.Forbidden("candidate search requires a recruiter role")
	}
	return s.seekers.Search(ctx, f)
}

// BusinessInsights produces hiring-funnel analytics over the recruiter's own
// postings.
func (s *Service) BusinessInsights(ctx context.Context, ident identity.Identity) (*Insights, error) {
	if !ident.IsRecruiter() {
		return nil, appErrors.Forbidden("business insights require a recruiter role")
	}
	postings, err := s.jobs.ListByRecruiter(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	descriptors := make([]oracle.JobDescriptor, 0, len(postings))
	for i := range postings {
		descriptors = append(descriptors, toDescriptor(&postings[i]))
	}

	raw, err := s.oracle.BusinessInsights(ctx, oracle.InsightsRequest{
		RecruiterID: ident.UserID.String(),
		Jobs:        descriptors,
	})
	if err != nil {
		return nil, err
	}

	out := &Insights{
		FunnelMetrics:  map[string]float64{},
		TopSkillDemand: []string{},
	}
	if raw.Empty {
		return out, nil
	}
	var resp oracle.InsightsResponse
	if err := raw.Decode(&resp); err != nil {
		return nil, err
	}
	if resp.Summary != nil {
		out.Summary = *resp.Summary
	}
	if resp.FunnelMetrics != nil {
		out.FunnelMetrics = resp.FunnelMetrics
	}
	if resp.TopSkillDemand != nil {
		out.TopSkillDemand = resp.TopSkillDemand
	}
	return out, nil
}

func (s *Service) authorizedPosting(ctx context.Context, ident identity.Identity, jobID uuid.UUID) (*job.Posting, error) {
	if !ident.IsRecruiter() {
		return nil, appErrors.Forbidden("sourcing requires a recruiter role")
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

// assembleOrderedPool keeps the submitted candidate order so index-based
// match results can be resolved back to candidate IDs.
func (s *Service) assembleOrderedPool(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, []string, error) {
	known, err := s.seekers.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	kept := make([]uuid.UUID, 0, len(known))
	texts := make([]string, 0, len(known))
	for _, id := range known {
		primary, err := s.resumes.GetPrimaryByJobSeeker(ctx, id)
		if err != nil {
			if appErrors.IsNotFound(err) {
				continue
			}
			return nil, nil, err
		}
		if primary.HasParsedContent() {
			kept = append(kept, id)
			texts = append(texts, primary.ParsedContent)
		}
	}
	return kept, texts, nil
}

func (s *Service) assemblePool(ctx context.Context, ids []uuid.UUID) (map[string]string, error) {
	known, err := s.seekers.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	pool := make(map[string]string, len(known))
	for _, id := range known {
		primary, err := s.resumes.GetPrimaryByJobSeeker(ctx, id)
		if err != nil {
			if appErrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if primary.HasParsedContent() {
			pool[id.String()] = primary.ParsedContent
		}
	}
	return pool, nil
}

func toDescriptor(p *job.Posting) oracle.JobDescriptor {
	return oracle.JobDescriptor{
		JobID:        p.ID.String(),
		Title:        p.Title,
		Company:      p.Company,
		Description:  p.Description,
		Requirements: p.Requirements,
		Skills:       p.Skills,
	}
}
