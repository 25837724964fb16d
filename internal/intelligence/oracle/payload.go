package oracle

import "encoding/json"

// Request payloads sent to the AI service.  Field names follow the service's
// JSON contract.

// RecommendJobsRequest asks for job suggestions for one job seeker.
type RecommendJobsRequest struct {
	JobSeekerID    string          `json:"jobSeekerId"`
	ResumeContent  string          `json:"resumeContent"`
	OpenJobs       []JobDescriptor `json:"openJobs"`
	UseSemantic    bool            `json:"useSemanticMatching"`
	ContextAware   bool            `json:"includeContextAwareMatching"`
	MaxSuggestions int             `json:"maxSuggestions,omitempty"`
}

// JobDescriptor is the slim posting representation sent with scoring requests.
type JobDescriptor struct {
	JobID        string   `json:"jobId"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Skills       []string `json:"skills,omitempty"`
}

// SkillGapRequest asks for a gap analysis of one parsed resume against one
// job posting.
type SkillGapRequest struct {
	ResumeContent string `json:"resumeContent"`
	JobID         string `json:"jobPostingId"`
}

// CareerPathRequest asks for suggested progression steps.
type CareerPathRequest struct {
	JobSeekerID   string `json:"jobSeekerId"`
	ResumeContent string `json:"resumeContent"`
}

// ScreenRequest submits a candidate pool for screening against free-form
// requirements text.  Resumes maps candidate ID to parsed resume content.
type ScreenRequest struct {
	Requirements string            `json:"requirements"`
	Resumes      map[string]string `json:"resumes"`
}

// AdvancedMatchRequest runs algorithmic matching between one job and an
// ordered list of resume texts.  Response entries refer to resumes by their
// position in Resumes.  Algorithm is "tfidf" or "bert".
type AdvancedMatchRequest struct {
	Job       JobDescriptor `json:"job"`
	Resumes   []string      `json:"resumes"`
	Algorithm string        `json:"algorithm"`
}

// PredictFitRequest asks for a fit prediction for one candidate.
type PredictFitRequest struct {
	Job           JobDescriptor `json:"job"`
	CandidateID   string        `json:"candidateId"`
	ResumeContent string        `json:"resumeContent"`
}

// ClusterRequest groups a candidate pool by skills.
type ClusterRequest struct {
	Resumes     map[string]string `json:"resumes"`
	NumClusters int               `json:"numClusters,omitempty"`
}

// InsightsRequest asks for hiring-funnel analytics over a recruiter's
// postings.
type InsightsRequest struct {
	RecruiterID string          `json:"recruiterId"`
	Jobs        []JobDescriptor `json:"jobs"`
}

// Response payloads.  Every field the service may omit is a pointer or slice
// so the normalization layer can distinguish absent from zero.

// ScreenedEntry is one candidate's scores in a screening response.  Identity
// fields (name, contact) are not part of the wire contract; they come from
// the local profile during normalization.
type ScreenedEntry struct {
	MatchScore      *float64 `json:"matchScore"`
	Rationale       *string  `json:"rationale"`
	KeySkills       []string `json:"keySkills"`
	ExperienceYears *int     `json:"experienceYears"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	CulturalFit     *float64 `json:"culturalFitScore"`
}

// ScreenResponse maps candidate ID to that candidate's screening entry.
type ScreenResponse map[string]ScreenedEntry

// RecommendedJob is one suggestion in a recommendation response.  Raw keeps
// the entry's verbatim JSON for audit storage.
type RecommendedJob struct {
	Title   *string
	Company *string
	Reason  *string
	Score   *float64
	Raw     json.RawMessage
}

func (j *RecommendedJob) UnmarshalJSON(data []byte) error {
	var fields struct {
		Title   *string  `json:"title"`
		Company *string  `json:"company"`
		Reason  *string  `json:"reason"`
		Score   *float64 `json:"score"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	j.Title = fields.Title
	j.Company = fields.Company
	j.Reason = fields.Reason
	j.Score = fields.Score
	j.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// RecommendResponse is the full recommendation payload.  JobPostingID is an
// optional top-level back-reference covering every entry; individual entries
// carry no posting ID.
type RecommendResponse struct {
	Jobs         []RecommendedJob `json:"jobs"`
	JobPostingID *string          `json:"job_posting_id"`
}

// SkillGapResponse is the gap-analysis payload.  Learning resource entries
// are free-form field sets, so they decode loosely and get coerced to
// strings downstream.
type SkillGapResponse struct {
	MissingSkills     []string         `json:"missingSkills"`
	MatchingSkills    []string         `json:"matchingSkills"`
	LearningResources []map[string]any `json:"learningResources"`
	OverallMatch      *float64         `json:"overallMatch"`
}

// CareerPathEntry is one suggested progression in a career-path payload.
type CareerPathEntry struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	RequiredSkills  []string `json:"requiredSkills"`
	GrowthPotential *string  `json:"growthPotential"`
	TimeToAchieve   *string  `json:"timeToAchieve"`
}

// CareerPathResponse is the full career-path payload.
type CareerPathResponse struct {
	CareerPaths []CareerPathEntry `json:"careerPaths"`
}

// MatchEntry is one ranked candidate in an advanced-match response.  Index
// points back into the submitted resume list.
type MatchEntry struct {
	Index       *int     `json:"index"`
	Score       *float64 `json:"score"`
	Explanation *string  `json:"explanation"`
}

// AdvancedMatchResponse is the full advanced-match payload.
type AdvancedMatchResponse struct {
	Algorithm *string      `json:"algorithm"`
	Matches   []MatchEntry `json:"matches"`
}

// PredictFitResponse is the fit-prediction payload.
type PredictFitResponse struct {
	CandidateID *string  `json:"candidateId"`
	FitScore    *float64 `json:"fitScore"`
	Confidence  *float64 `json:"confidence"`
	Explanation *string  `json:"explanation"`
}

// ClusterGroup is one cluster in a clustering response.
type ClusterGroup struct {
	Label        *string  `json:"label"`
	CandidateIDs []string `json:"candidateIds"`
	TopSkills    []string `json:"topSkills"`
}

// ClusterResponse is the full clustering payload.
type ClusterResponse struct {
	Clusters []ClusterGroup `json:"clusters"`
}

// InsightsResponse is the business-insights payload, passed through to the
// API consumer as-is.
type InsightsResponse struct {
	Summary        *string            `json:"summary"`
	FunnelMetrics  map[string]float64 `json:"funnelMetrics"`
	TopSkillDemand []string           `json:"topSkillDemand"`
}
