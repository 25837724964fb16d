// Package jobseeker models candidate profiles.
package jobseeker

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile is one job seeker account.
type Profile struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	Headline        string    `json:"headline,omitempty"`
	Location        string    `json:"location,omitempty"`
	YearsExperience int       `json:"yearsExperience"`
	Skills          []string  `json:"skills"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SearchFilter narrows a free-text profile search.  Empty fields match
// everything.
type SearchFilter struct {
	Query    string
	Location string
	MinYears int
	Limit    int
}

// Repository persists job seeker profiles.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error

	// Search matches profiles against the filter's free-text query over
	// name, headline and skills, newest first.
	Search(ctx context.Context, f SearchFilter) ([]Profile, error)

	// ExistingIDs filters ids down to those present in storage, preserving
	// input order. Screening uses it to drop unknown candidate IDs.
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}
