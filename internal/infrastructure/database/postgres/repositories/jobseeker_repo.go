package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/TalentMatch-AI/internal/domain/jobseeker"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// JobSeekerRepo implements jobseeker.Repository.
type JobSeekerRepo struct {
	pool *pgxpool.Pool
}

// NewJobSeekerRepo builds a JobSeekerRepo on pool.
func NewJobSeekerRepo(pool *pgxpool.Pool) *JobSeekerRepo {
	return &JobSeekerRepo{pool: pool}
}

var _ jobseeker.Repository = (*JobSeekerRepo)(nil)

const seekerColumns = `id, email, full_name, headline, location,
	years_experience, skills, created_at, updated_at`

func scanSeeker(row pgx.Row) (*jobseeker.Profile, error) {
	var p jobseeker.Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Headline, &p.Location,
		&p.YearsExperience, &p.Skills, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts p.
func (r *JobSeekerRepo) Create(ctx context.Context, p *jobseeker.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO job_seekers
			(id, email, full_name, headline, location, years_experience, skills, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Email, p.FullName, p.Headline, p.Location,
		p.YearsExperience, p.Skills, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "insert job seeker")
	}
	return nil
}

// GetByID fetches one profile.
func (r *JobSeekerRepo) GetByID(ctx context.Context, id uuid.UUID) (*jobseeker.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+seekerColumns+` FROM job_seekers WHERE id = $1`, id)
	p, err := scanSeeker(row)
	if err != nil {
		return nil, mapScanError(err, appErrors.ErrCodeJobSeekerNotFound, "query job seeker")
	}
	return p, nil
}

// GetByEmail fetches one profile by email.
func (r *JobSeekerRepo) GetByEmail(ctx context.Context, email string) (*jobseeker.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+seekerColumns+` FROM job_seekers WHERE email = $1`, email)
	p, err := scanSeeker(row)
	if err != nil {
		return nil, mapScanError(err, appErrors.ErrCodeJobSeekerNotFound, "query job seeker by email")
	}
	return p, nil
}

// Update rewrites mutable profile fields.
func (r *JobSeekerRepo) Update(ctx context.Context, p *jobseeker.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE job_seekers SET
			full_name = $2, headline = $3, location = $4,
			years_experience = $5, skills = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.FullName, p.Headline, p.Location,
		p.YearsExperience, p.Skills, p.UpdatedAt)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "update job seeker")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.ErrCodeJobSeekerNotFound, "job seeker not found")
	}
	return nil
}

// Search matches profiles against the free-text query, newest first.
func (r *JobSeekerRepo) Search(ctx context.Context, f jobseeker.SearchFilter) ([]jobseeker.Profile, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+seekerColumns+` FROM job_seekers
		WHERE ($1 = '' OR full_name ILIKE '%'||$1||'%' OR headline ILIKE '%'||$1||'%'
		       OR EXISTS (SELECT 1 FROM unnest(skills) sk WHERE sk ILIKE '%'||$1||'%'))
		  AND ($2 = '' OR location ILIKE '%'||$2||'%')
		  AND years_experience >= $3
		ORDER BY created_at DESC
		LIMIT $4`,
		f.Query, f.Location, f.MinYears, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "search job seekers")
	}
	defer rows.Close()

	out := []jobseeker.Profile{}
	for rows.Next() {
		p, err := scanSeeker(rows)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "scan job seeker")
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "iterate job seekers")
	}
	return out, nil
}

// ExistingIDs filters ids to those present in storage, preserving input order.
func (r *JobSeekerRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM job_seekers WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "query existing job seekers")
	}
	defer rows.Close()

	present := map[uuid.UUID]bool{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "scan job seeker id")
		}
		present[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "iterate job seeker ids")
	}

	out := []uuid.UUID{}
	for _, id := range ids {
		if present[id] {
			out = append(out, id)
		}
	}
	return out, nil
}
