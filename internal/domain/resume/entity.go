// Package resume models uploaded resume files and their parsed content.
package resume

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Resume is one uploaded resume.  The raw file lives in object storage under
// ObjectKey; ParsedContent holds the structured JSON extracted by the AI
// service, empty until parsing succeeds.
type Resume struct {
	ID            uuid.UUID `json:"id"`
	JobSeekerID   uuid.UUID `json:"jobSeekerId"`
	FileName      string    `json:"fileName"`
	ContentType   string    `json:"contentType"`
	SizeBytes     int64     `json:"sizeBytes"`
	ObjectKey     string    `json:"objectKey"`
	ParsedContent string    `json:"parsedContent,omitempty"`
	IsPrimary     bool      `json:"isPrimary"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

// HasParsedContent reports whether AI parsing produced usable content.
func (r Resume) HasParsedContent() bool {
	return r.ParsedContent != ""
}

// Repository persists resume metadata. Raw file bytes are stored separately
// in object storage.
type Repository interface {
	Create(ctx context.Context, r *Resume) error
	GetByID(ctx context.Context, id uuid.UUID) (*Resume, error)
	ListByJobSeeker(ctx context.Context, jobSeekerID uuid.UUID) ([]Resume, error)

	// GetPrimaryByJobSeeker returns the job seeker's primary resume, or a
	// not-found error when none is marked primary.
	GetPrimaryByJobSeeker(ctx context.Context, jobSeekerID uuid.UUID) (*Resume, error)

	// SetPrimary marks id primary and clears the flag on the job seeker's
	// other resumes in the same transaction.
	SetPrimary(ctx context.Context, jobSeekerID, id uuid.UUID) error

	UpdateParsedContent(ctx context.Context, id uuid.UUID, content string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
