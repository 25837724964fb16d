// Package candidate holds the screening domain model: scored candidate
// records produced by the AI service, plus the pure ranking and clustering
// operations applied to them.
package candidate

// Record is one screened candidate as returned by the AI scoring service and
// normalized by the screening layer.  Score, Rationale and CulturalFit are
// pointers so the rest of the pipeline can distinguish a value the service
// omitted from a genuine zero.  KeySkills, Strengths and Weaknesses are never
// nil after normalization, and ExperienceYears is never negative.
type Record struct {
	CandidateID     string   `json:"candidateId"`
	Name            string   `json:"name,omitempty"`
	Contact         string   `json:"contact,omitempty"`
	Score           *float64 `json:"score,omitempty"`
	Rationale       *string  `json:"rationale,omitempty"`
	KeySkills       []string `json:"keySkills"`
	ExperienceYears int      `json:"experienceYears"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	CulturalFit     *float64 `json:"culturalFitScore,omitempty"`
}

// EffectiveScore returns the record's score, treating an unset score as 0 so
// unscored candidates sort last without being dropped.
func (r Record) EffectiveScore() float64 {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

// FirstKeySkill returns the candidate's first key skill, or empty when none
// were reported.
func (r Record) FirstKeySkill() string {
	if len(r.KeySkills) == 0 {
		return ""
	}
	return r.KeySkills[0]
}
