package repository

import (
	"context"
	"errors"
	"time"

	"workhub/internal/database"
	"workhub/internal/domain/rating"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RatingRepository interface {
	Upsert(ctx context.Context, r rating.Rating) (rating.Rating, error)
	ListByTarget(ctx context.Context, targetID uuid.UUID) ([]rating.Rating, error)
	SummaryForTarget(ctx context.Context, targetID uuid.UUID) (rating.Summary, error)
}

type PostgresRatingRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresRatingRepository(db database.DB) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db, now: time.Now}
}

const ratingColumns = `id, rater_id, target_id, job_id, score, comment, created_at, updated_at`

// Upsert enforces one rating per (rater, target, job): a repeat submission
// revises the earlier score instead of adding history.
func (r *PostgresRatingRepository) Upsert(ctx context.Context, rt rating.Rating) (rating.Rating, error) {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	now := r.now().UTC()

	row := r.db.QueryRow(ctx,
		`INSERT INTO ratings (id, rater_id, target_id, job_id, score, comment, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (rater_id, target_id, COALESCE(job_id, '00000000-0000-0000-0000-000000000000'::uuid))
		 DO UPDATE SET score = EXCLUDED.score, comment = EXCLUDED.comment, updated_at = EXCLUDED.updated_at
		 RETURNING `+ratingColumns,
		rt.ID, rt.RaterID, rt.TargetID, rt.JobID, rt.Score, rt.Comment, now, now,
	)
	return scanRating(row)
}

func (r *PostgresRatingRepository) ListByTarget(ctx context.Context, targetID uuid.UUID) ([]rating.Rating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ratingColumns+` FROM ratings WHERE target_id = $1 ORDER BY updated_at DESC`,
		targetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]rating.Rating, 0)
	for rows.Next() {
		var rt rating.Rating
		if err := rows.Scan(&rt.ID, &rt.RaterID, &rt.TargetID, &rt.JobID, &rt.Score, &rt.Comment, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRatingRepository) SummaryForTarget(ctx context.Context, targetID uuid.UUID) (rating.Summary, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(score), 0), COUNT(1) FROM ratings WHERE target_id = $1`,
		targetID,
	)
	var s rating.Summary
	if err := row.Scan(&s.Average, &s.Count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rating.Summary{}, nil
		}
		return rating.Summary{}, err
	}
	return s, nil
}

func scanRating(row database.Row) (rating.Rating, error) {
	var rt rating.Rating
	if err := row.Scan(&rt.ID, &rt.RaterID, &rt.TargetID, &rt.JobID, &rt.Score, &rt.Comment, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
		return rating.Rating{}, err
	}
	return rt, nil
}
