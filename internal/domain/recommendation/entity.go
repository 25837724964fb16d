// Package recommendation models persisted job recommendations for job seekers.
package recommendation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Recommendation is one persisted job suggestion for a job seeker.  Rows are
// append-only: every successful scoring pass inserts fresh rows, and reads
// return the accumulated history ordered by score.  JobID is nil when the
// AI service did not tie the suggestion to a known posting.  RawData keeps
// the entry's verbatim response JSON for audit and debugging.
type Recommendation struct {
	ID          uuid.UUID  `json:"id"`
	JobSeekerID uuid.UUID  `json:"jobSeekerId"`
	JobID       *uuid.UUID `json:"jobId,omitempty"`
	JobTitle    string     `json:"jobTitle"`
	Company     string     `json:"company"`
	MatchScore  float64    `json:"matchScore"`
	Reason      string     `json:"reason"`
	RawData     string     `json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// SkillGap is the aggregated skill-gap analysis for a job seeker against one
// job posting.  Slices are always non-nil; absent analysis sections become
// empty slices and OverallMatch defaults to 0.
type SkillGap struct {
	JobID             uuid.UUID           `json:"jobPostingId"`
	MissingSkills     []string            `json:"missingSkills"`
	MatchingSkills    []string            `json:"matchingSkills"`
	LearningResources []map[string]string `json:"learningResources"`
	OverallMatch      float64             `json:"overallMatchPercentage"`
}

// CareerPath is one suggested career progression for a job seeker.
type CareerPath struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"requiredSkills"`
	GrowthPotential string   `json:"growthPotential"`
	TimeToAchieve   string   `json:"timeToAchieve"`
}

// Repository persists and reads recommendation history.
type Repository interface {
	// SaveBatch inserts recs as new rows. It never updates or deduplicates
	// existing history.
	SaveBatch(ctx context.Context, recs []Recommendation) error

	// ListByJobSeeker returns all persisted recommendations for the job
	// seeker ordered by match score descending.
	ListByJobSeeker(ctx context.Context, jobSeekerID uuid.UUID) ([]Recommendation, error)

	// DeleteByJobSeeker removes all history for the job seeker.
	DeleteByJobSeeker(ctx context.Context, jobSeekerID uuid.UUID) error
}
