// Package kafka publishes domain events so downstream analytics can follow
// screening and recommendation activity.
package kafka

// Topic names.  Partition keys are the owning entity's ID so per-entity
// ordering holds.
const (
	TopicScreeningCompleted      = "talent.screening.completed"
	TopicRecommendationPersisted = "talent.recommendation.persisted"
	TopicResumeParsed            = "talent.resume.parsed"
)

// ScreeningCompletedEvent is emitted after a screening pass finishes.
type ScreeningCompletedEvent struct {
	JobID         string  `json:"jobId"`
	RecruiterID   string  `json:"recruiterId"`
	PoolSize      int     `json:"poolSize"`
	ScoredCount   int     `json:"scoredCount"`
	SkippedCount  int     `json:"skippedCount"`
	TopScore      float64 `json:"topScore"`
	CompletedAtMS int64   `json:"completedAtMs"`
}

// RecommendationPersistedEvent is emitted after recommendation rows are
// written for a job seeker.
type RecommendationPersistedEvent struct {
	JobSeekerID   string `json:"jobSeekerId"`
	Count         int    `json:"count"`
	PersistedAtMS int64  `json:"persistedAtMs"`
}

// ResumeParsedEvent is emitted after the AI service extracts content from an
// uploaded resume.
type ResumeParsedEvent struct {
	ResumeID    string `json:"resumeId"`
	JobSeekerID string `json:"jobSeekerId"`
	ParsedAtMS  int64  `json:"parsedAtMs"`
}
