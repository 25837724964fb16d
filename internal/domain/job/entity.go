// Package job models job postings created by recruiters.
package job

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a posting.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
	StatusDraft  Status = "DRAFT"
)

// Posting is one job advertisement.
type Posting struct {
	ID           uuid.UUID `json:"id"`
	RecruiterID  uuid.UUID `json:"recruiterId"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Skills       []string  `json:"skills"`
	SalaryMin    int       `json:"salaryMin,omitempty"`
	SalaryMax    int       `json:"salaryMax,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the posting belongs to the given recruiter.
func (p Posting) OwnedBy(recruiterID uuid.UUID) bool {
	return p.RecruiterID == recruiterID
}

// SearchFilter narrows ListOpen results.
type SearchFilter struct {
	Keyword  string
	Location string
	Skill    string
	Limit    int
	Offset   int
}

// Repository persists job postings.
type Repository interface {
	Create(ctx context.Context, p *Posting) error
	GetByID(ctx context.Context, id uuid.UUID) (*Posting, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]Posting, error)
	ListOpen(ctx context.Context, f SearchFilter) ([]Posting, error)
	Update(ctx context.Context, p *Posting) error
	Delete(ctx context.Context, id uuid.UUID) error
}
