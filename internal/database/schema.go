package database

import (
	"context"
	"fmt"
)

// bootstrapLockID keys the advisory lock guarding concurrent schema setup.
const bootstrapLockID = 824113907

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS cube`,
	`CREATE EXTENSION IF NOT EXISTS earthdistance`,

	`CREATE TABLE IF NOT EXISTS users (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		phone      TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id                   UUID PRIMARY KEY,
		employer_id          UUID NOT NULL REFERENCES users(id),
		title                TEXT NOT NULL,
		description          TEXT NOT NULL DEFAULT '',
		job_type             TEXT NOT NULL,
		city                 TEXT NOT NULL,
		address_text         TEXT NOT NULL DEFAULT '',
		longitude            DOUBLE PRECISION NOT NULL DEFAULT 0,
		latitude             DOUBLE PRECISION NOT NULL DEFAULT 0,
		pay_rate_min         DOUBLE PRECISION NOT NULL DEFAULT 0,
		pay_rate_max         DOUBLE PRECISION NOT NULL DEFAULT 0,
		pay_type             TEXT NOT NULL DEFAULT '',
		application_deadline TIMESTAMPTZ,
		required_skills      TEXT[] NOT NULL DEFAULT '{}',
		image_url            TEXT NOT NULL DEFAULT '',
		status               TEXT NOT NULL DEFAULT 'Active',
		posted_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// proximity ranking runs over every row, so the coordinate columns are
	// NOT NULL with the (0,0) sentinel standing in for unresolved locations
	`CREATE INDEX IF NOT EXISTS idx_jobs_earth
		ON jobs USING gist (ll_to_earth(latitude, longitude))`,

	`CREATE INDEX IF NOT EXISTS idx_jobs_status_type_posted
		ON jobs (status, job_type, posted_at DESC)`,

	`CREATE INDEX IF NOT EXISTS idx_jobs_employer
		ON jobs (employer_id)`,

	`CREATE TABLE IF NOT EXISTS applications (
		id               UUID PRIMARY KEY,
		job_id           UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		applicant_id     UUID NOT NULL REFERENCES users(id),
		status           TEXT NOT NULL DEFAULT 'Pending',
		resume_url       TEXT NOT NULL,
		cover_letter_url TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT applications_job_applicant_key UNIQUE (job_id, applicant_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_applications_applicant
		ON applications (applicant_id)`,

	`CREATE TABLE IF NOT EXISTS ratings (
		id         UUID PRIMARY KEY,
		rater_id   UUID NOT NULL REFERENCES users(id),
		target_id  UUID NOT NULL REFERENCES users(id),
		job_id     UUID REFERENCES jobs(id) ON DELETE SET NULL,
		score      INT NOT NULL CHECK (score >= 1 AND score <= 5),
		comment    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// one rating per (rater, target, job); a NULL job scope collapses to the
	// zero uuid so the uniqueness holds for job-less ratings too
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_ratings_rater_target_job
		ON ratings (rater_id, target_id,
			COALESCE(job_id, '00000000-0000-0000-0000-000000000000'::uuid))`,

	`CREATE INDEX IF NOT EXISTS idx_ratings_target
		ON ratings (target_id)`,
}

// Bootstrap applies the schema idempotently. The advisory lock is
// transaction-scoped so it releases on commit or rollback.
func Bootstrap(ctx context.Context, db DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, bootstrapLockID); err != nil {
		return err
	}

	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap: %w", err)
		}
	}

	return tx.Commit(ctx)
}
