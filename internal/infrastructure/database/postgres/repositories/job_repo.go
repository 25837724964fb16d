package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/TalentMatch-AI/internal/domain/job"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// JobRepo implements job.Repository.
type JobRepo struct {
	pool *pgxpool.Pool
}

// NewJobRepo builds a JobRepo on pool.
func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

var _ job.Repository = (*JobRepo)(nil)

const jobColumns = `id, recruiter_id, title, company, location, description,
	requirements, skills, salary_min, salary_max, status, created_at, updated_at`

func scanJob(row pgx.Row) (*job.Posting, error) {
	var p job.Posting
	err := row.Scan(&p.ID, &p.RecruiterID, &p.Title, &p.Company, &p.Location,
		&p.Description, &p.Requirements, &p.Skills, &p.SalaryMin, &p.SalaryMax,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts p, assigning ID and timestamps when unset.
func (r *JobRepo) Create(ctx context.Context, p *job.Posting) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = job.StatusOpen
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO job_postings
			(id, recruiter_id, title, company, location, description,
			 requirements, skills, salary_min, salary_max, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.RecruiterID, p.Title, p.Company, p.Location, p.Description,
		p.Requirements, p.Skills, p.SalaryMin, p.SalaryMax, p.Status,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "insert job posting")
	}
	return nil
}

// GetByID fetches one posting.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*job.Posting, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, id)
	p, err := scanJob(row)
	if err != nil {
		return nil, mapScanError(err, appErrors.ErrCodeJobNotFound, "query job posting")
	}
	return p, nil
}

// ListByRecruiter returns a recruiter's postings, newest first.
func (r *JobRepo) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]job.Posting, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM job_postings
		 WHERE recruiter_id = $1 ORDER BY created_at DESC`, recruiterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "query recruiter postings")
	}
	return collectJobs(rows)
}

// ListOpen returns open postings matching f, newest first.
func (r *JobRepo) ListOpen(ctx context.Context, f job.SearchFilter) ([]job.Posting, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+jobColumns+` FROM job_postings
		WHERE status = $1
		  AND ($2 = '' OR title ILIKE '%'||$2||'%' OR description ILIKE '%'||$2||'%')
		  AND ($3 = '' OR location ILIKE '%'||$3||'%')
		  AND ($4 = '' OR $4 = ANY(skills))
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6`,
		job.StatusOpen, f.Keyword, f.Location, f.Skill, limit, f.Offset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "query open postings")
	}
	return collectJobs(rows)
}

func collectJobs(rows pgx.Rows) ([]job.Posting, error) {
	defer rows.Close()
	out := []job.Posting{}
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "scan job posting")
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "iterate job postings")
	}
	return out, nil
}

// Update rewrites all mutable fields of p.
func (r *JobRepo) Update(ctx context.Context, p *job.Posting) error {
	p.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE job_postings SET
			title = $2, company = $3, location = $4, description = $5,
			requirements = $6, skills = $7, salary_min = $8, salary_max = $9,
			status = $10, updated_at = $11
		WHERE id = $1`,
		p.ID, p.Title, p.Company, p.Location, p.Description, p.Requirements,
		p.Skills, p.SalaryMin, p.SalaryMax, p.Status, p.UpdatedAt)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "update job posting")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.ErrCodeJobNotFound, "job posting not found")
	}
	return nil
}

// Delete removes one posting.
func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "delete job posting")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.ErrCodeJobNotFound, "job posting not found")
	}
	return nil
}
