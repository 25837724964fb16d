package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/TalentMatch-AI/internal/domain/recommendation"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// RecommendationRepo implements recommendation.Repository.
type RecommendationRepo struct {
	pool *pgxpool.Pool
}

// NewRecommendationRepo builds a RecommendationRepo on pool.
func NewRecommendationRepo(pool *pgxpool.Pool) *RecommendationRepo {
	return &RecommendationRepo{pool: pool}
}

var _ recommendation.Repository = (*RecommendationRepo)(nil)

// SaveBatch inserts recs as fresh rows inside one transaction.  History is
// append-only: repeated scoring passes accumulate rather than replace.
func (r *RecommendationRepo) SaveBatch(ctx context.Context, recs []recommendation.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	const insertSQL = `
		INSERT INTO recommendations
			(id, job_seeker_id, job_id, job_title, company, match_score, reason, raw_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, rec := range recs {
		id := rec.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		batch.Queue(insertSQL,
			id, rec.JobSeekerID, rec.JobID, rec.JobTitle, rec.Company,
			rec.MatchScore, rec.Reason, rec.RawData, rec.CreatedAt)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range recs {
		if _, err := br.Exec(); err != nil {
			return appErrors.Wrap(err, appErrors.ErrCodeRecommendationPersist, "insert recommendation batch")
		}
	}
	return nil
}

// ListByJobSeeker returns the full persisted history ordered by score
// descending, newest first among ties.
func (r *RecommendationRepo) ListByJobSeeker(ctx context.Context, jobSeekerID uuid.UUID) ([]recommendation.Recommendation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, job_seeker_id, job_id, job_title, company, match_score, reason, raw_data, created_at
		FROM recommendations
		WHERE job_seeker_id = $1
		ORDER BY match_score DESC, created_at DESC`,
		jobSeekerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "query recommendations")
	}
	defer rows.Close()

	out := []recommendation.Recommendation{}
	for rows.Next() {
		var rec recommendation.Recommendation
		if err := rows.Scan(&rec.ID, &rec.JobSeekerID, &rec.JobID, &rec.JobTitle,
			&rec.Company, &rec.MatchScore, &rec.Reason, &rec.RawData, &rec.CreatedAt); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "scan recommendation")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "iterate recommendations")
	}
	return out, nil
}

// DeleteByJobSeeker removes all history for the job seeker.
func (r *RecommendationRepo) DeleteByJobSeeker(ctx context.Context, jobSeekerID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM recommendations WHERE job_seeker_id = $1`, jobSeekerID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "delete recommendations")
	}
	return nil
}
