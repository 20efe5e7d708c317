package repository

import (
	"context"
	"errors"
	"time"

	"workhub/internal/database"
	"workhub/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (application.Application, error)
	FindByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	CountByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]int, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error)
}

type PostgresApplicationRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db, now: time.Now}
}

const applicationColumns = `id, job_id, applicant_id, status, resume_url, cover_letter_url, created_at, updated_at`

const uniqueViolation = "23505"

// Create persists the application. The (job_id, applicant_id) unique
// constraint is the authority on duplicates; the caller's existence check is
// only a fast path, so the constraint violation maps to ErrDuplicate here.
func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}
	now := r.now().UTC()

	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, job_id, applicant_id, status, resume_url, cover_letter_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+applicationColumns,
		a.ID, a.JobID, a.ApplicantID, string(a.Status), a.ResumeURL, a.CoverLetterURL, now, now,
	)

	stored, err := scanApplication(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return application.Application{}, application.ErrDuplicate
		}
		return application.Application{}, err
	}
	return stored, nil
}

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	)
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

// CountByJobIDs is one grouped aggregate over all requested jobs, not a
// query per job.
func (r *PostgresApplicationRepository) CountByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id, COUNT(1) FROM applications WHERE job_id = ANY($1) GROUP BY job_id`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var c int
		if err := rows.Scan(&id, &c); err != nil {
			return nil, err
		}
		out[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
}

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE applicant_id = $1 ORDER BY created_at DESC`, applicantID)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3 RETURNING `+applicationColumns,
		string(status), r.now().UTC(), id,
	)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) list(ctx context.Context, sql string, arg any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		var status string
		if err := rows.Scan(&a.ID, &a.JobID, &a.ApplicantID, &status, &a.ResumeURL, &a.CoverLetterURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &status, &a.ResumeURL, &a.CoverLetterURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
