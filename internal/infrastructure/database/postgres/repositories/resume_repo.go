package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/TalentMatch-AI/internal/domain/resume"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// ResumeRepo implements resume.Repository.
type ResumeRepo struct {
	pool *pgxpool.Pool
}

// NewResumeRepo builds a ResumeRepo on pool.
func NewResumeRepo(pool *pgxpool.Pool) *ResumeRepo {
	return &ResumeRepo{pool: pool}
}

var _ resume.Repository = (*ResumeRepo)(nil)

const resumeColumns = `id, job_seeker_id, file_name, content_type, size_bytes,
	object_key, parsed_content, is_primary, uploaded_at`

func scanResume(row pgx.Row) (*resume.Resume, error) {
	var r resume.Resume
	err := row.Scan(&r.ID, &r.JobSeekerID, &r.FileName, &r.ContentType,
		&r.SizeBytes, &r.ObjectKey, &r.ParsedContent, &r.IsPrimary, &r.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts r, assigning an ID when unset.
func (p *ResumeRepo) Create(ctx context.Context, r *resume.Resume) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO resumes
			(id, job_seeker_id, file_name, content_type, size_bytes,
			 object_key, parsed_content, is_primary, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.JobSeekerID, r.FileName, r.ContentType, r.SizeBytes,
		r.ObjectKey, r.ParsedContent, r.IsPrimary, r.UploadedAt)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "insert resume")
	}
	return nil
}

// GetByID fetches one resume.
func (p *ResumeRepo) GetByID(ctx context.Context, id uuid.UUID) (*resume.Resume, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	r, err := scanResume(row)
	if err != nil {
		return nil, mapScanError(err, appErrors.ErrCodeResumeNotFound, "query resume")
	}
	return r, nil
}

// ListByJobSeeker returns all of one job seeker's resumes, newest first.
func (p *ResumeRepo) ListByJobSeeker(ctx context.Context, jobSeekerID uuid.UUID) ([]resume.Resume, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 WHERE job_seeker_id = $1 ORDER BY uploaded_at DESC`, jobSeekerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "query resumes")
	}
	defer rows.Close()

	out := []resume.Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "scan resume")
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "iterate resumes")
	}
	return out, nil
}

// GetPrimaryByJobSeeker fetches the primary resume, or ErrCodeNoPrimaryResume
// when none is marked.
func (p *ResumeRepo) GetPrimaryByJobSeeker(ctx context.Context, jobSeekerID uuid.UUID) (*resume.Resume, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 WHERE job_seeker_id = $1 AND is_primary`, jobSeekerID)
	r, err := scanResume(row)
	if err != nil {
		return nil, mapScanError(err, appErrors.ErrCodeNoPrimaryResume, "query primary resume")
	}
	return r, nil
}

// SetPrimary marks id primary and clears the flag on siblings in a single
// transaction.
func (p *ResumeRepo) SetPrimary(ctx context.Context, jobSeekerID, id uuid.UUID) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBTxError, "begin set-primary")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE resumes SET is_primary = FALSE
		 WHERE job_seeker_id = $1 AND is_primary`, jobSeekerID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "clear primary flag")
	}
	tag, err := tx.Exec(ctx,
		`UPDATE resumes SET is_primary = TRUE
		 WHERE id = $1 AND job_seeker_id = $2`, id, jobSeekerID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "set primary flag")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.ErrCodeResumeNotFound, "resume not found for job seeker")
	}
	if err := tx.Commit(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBTxError, "commit set-primary")
	}
	return nil
}

// UpdateParsedContent stores the AI-extracted content for a resume.
func (p *ResumeRepo) UpdateParsedContent(ctx context.Context, id uuid.UUID, content string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE resumes SET parsed_content = $2 WHERE id = $1`, id, content)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "update parsed content")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.ErrCodeResumeNotFound, "resume not found")
	}
	return nil
}

// Delete removes one resume row.
func (p *ResumeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "delete resume")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.ErrCodeResumeNotFound, "resume not found")
	}
	return nil
}
