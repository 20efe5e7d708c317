package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"workhub/internal/database"
	"workhub/internal/domain/job"
	"workhub/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobPatch carries partial-update fields. Empty strings and nil pointers
// mean "leave unchanged"; this merge contract is deliberate and mirrored by
// the HTTP layer.
type JobPatch struct {
	Title       string
	Description string
	Type        string
	PayType     string
	ImageURL    string
	Status      string

	PayRateMin          *float64
	PayRateMax          *float64
	ApplicationDeadline *time.Time
	RequiredSkills      []string

	// City/AddressText/Location travel together: the usecase fills them only
	// after a city change has been re-geocoded.
	City        string
	AddressText string
	Location    *job.Point
}

type JobWithDistance struct {
	job.Job
	DistanceMeters *float64 `json:"distanceMeters,omitempty"`
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	UpdatePartial(ctx context.Context, id uuid.UUID, patch JobPatch) (job.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, f query.Filter, limit, offset int) ([]JobWithDistance, int, error)
}

type PostgresJobRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db, now: time.Now}
}

const jobColumns = `id, employer_id, title, description, job_type, city, address_text,
	longitude, latitude, pay_rate_min, pay_rate_max, pay_type,
	application_deadline, required_skills, image_url, status,
	posted_at, created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	now := r.now().UTC()
	if j.PostedAt.IsZero() {
		j.PostedAt = now
	}
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (id, employer_id, title, description, job_type, city, address_text,
			longitude, latitude, pay_rate_min, pay_rate_max, pay_type,
			application_deadline, required_skills, image_url, status,
			posted_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 RETURNING `+jobColumns,
		j.ID, j.EmployerID, j.Title, j.Description, string(j.Type), j.City, j.AddressText,
		j.Location.Lon, j.Location.Lat, j.PayRateMin, j.PayRateMax, string(j.PayType),
		j.ApplicationDeadline, j.RequiredSkills, j.ImageURL, string(j.Status),
		j.PostedAt, now, now,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) UpdatePartial(ctx context.Context, id uuid.UUID, patch JobPatch) (job.Job, error) {
	set := make([]string, 0, 12)
	args := make([]any, 0, 12)
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if s := strings.TrimSpace(patch.Title); s != "" {
		add("title", s)
	}
	if s := strings.TrimSpace(patch.Description); s != "" {
		add("description", s)
	}
	if s := strings.TrimSpace(patch.Type); s != "" {
		add("job_type", s)
	}
	if s := strings.TrimSpace(patch.PayType); s != "" {
		add("pay_type", s)
	}
	if s := strings.TrimSpace(patch.ImageURL); s != "" {
		add("image_url", s)
	}
	if s := strings.TrimSpace(patch.Status); s != "" {
		add("status", s)
	}
	if patch.PayRateMin != nil {
		add("pay_rate_min", *patch.PayRateMin)
	}
	if patch.PayRateMax != nil {
		add("pay_rate_max", *patch.PayRateMax)
	}
	if patch.ApplicationDeadline != nil {
		add("application_deadline", *patch.ApplicationDeadline)
	}
	if patch.RequiredSkills != nil {
		add("required_skills", patch.RequiredSkills)
	}
	if s := strings.TrimSpace(patch.City); s != "" {
		add("city", s)
		add("address_text", patch.AddressText)
		if patch.Location != nil {
			add("longitude", patch.Location.Lon)
			add("latitude", patch.Location.Lat)
		}
	}

	if len(set) == 0 {
		// nothing to merge; hand back the stored record
		return r.FindByID(ctx, id)
	}

	add("updated_at", r.now().UTC())

	args = append(args, id)
	sql := fmt.Sprintf(
		`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), jobColumns,
	)

	row := r.db.QueryRow(ctx, sql, args...)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

// Search returns one page of matches and the total match count. The plan is
// compiled once so both statements evaluate time-relative predicates at the
// same instant; the count can never disagree with page membership.
func (r *PostgresJobRepository) Search(ctx context.Context, f query.Filter, limit, offset int) ([]JobWithDistance, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	plan := query.Compile(f, r.now().UTC())

	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs WHERE `+plan.CountWhere, plan.CountArgs...)
	var total int
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	sel := jobColumns
	if plan.DistanceSelect != "" {
		sel += ", " + plan.DistanceSelect
	} else {
		sel += ", NULL::float8 AS distance_meters"
	}

	args := append([]any{}, plan.Args...)
	args = append(args, limit, offset)
	sql := fmt.Sprintf(
		`SELECT %s FROM jobs WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		sel, plan.Where, plan.OrderBy, len(args)-1, len(args),
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]JobWithDistance, 0)
	for rows.Next() {
		var jd JobWithDistance
		if err := scanJobInto(rows, &jd.Job, &jd.DistanceMeters); err != nil {
			return nil, 0, err
		}
		out = append(out, jd)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var jobType, payType, status string
	if err := row.Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Description, &jobType, &j.City, &j.AddressText,
		&j.Location.Lon, &j.Location.Lat, &j.PayRateMin, &j.PayRateMax, &payType,
		&j.ApplicationDeadline, &j.RequiredSkills, &j.ImageURL, &status,
		&j.PostedAt, &j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		return job.Job{}, err
	}
	j.Type = job.Type(jobType)
	j.PayType = job.PayType(payType)
	j.Status = job.Status(status)
	return j, nil
}

func scanJobInto(rows database.Rows, j *job.Job, distance **float64) error {
	var jobType, payType, status string
	if err := rows.Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Description, &jobType, &j.City, &j.AddressText,
		&j.Location.Lon, &j.Location.Lat, &j.PayRateMin, &j.PayRateMax, &payType,
		&j.ApplicationDeadline, &j.RequiredSkills, &j.ImageURL, &status,
		&j.PostedAt, &j.CreatedAt, &j.UpdatedAt,
		distance,
	); err != nil {
		return err
	}
	j.Type = job.Type(jobType)
	j.PayType = job.PayType(payType)
	j.Status = job.Status(status)
	return nil
}
