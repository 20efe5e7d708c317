package usecase

import (
	"context"
	"errors"
	"log"

	"workhub/internal/domain/job"
	"workhub/internal/domain/user"
	"workhub/internal/query"
	"workhub/internal/repository"

	"github.com/google/uuid"
)

type ListParams struct {
	Filter   query.Filter
	Page     int
	PageSize int
}

// JobView is a job decorated for a listing response. Decoration is
// projection only; nothing here writes back to the jobs table.
type JobView struct {
	repository.JobWithDistance
	Employer        *user.Summary `json:"employer,omitempty"`
	ApplicantsCount *int          `json:"applicantsCount,omitempty"`
}

type JobPage struct {
	Jobs        []JobView `json:"jobs"`
	Total       int       `json:"total"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
}

type JobDetail struct {
	JobView
	HasApplied *bool `json:"hasApplied,omitempty"`
}

type JobDiscoveryUsecase interface {
	List(ctx context.Context, p ListParams) (JobPage, error)
	MyJobs(ctx context.Context, employerID uuid.UUID, p ListParams) (JobPage, error)
	GetByID(ctx context.Context, id uuid.UUID, viewer *Actor) (JobDetail, error)
}

type DiscoveryConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

type JobDiscovery struct {
	jobs         repository.JobRepository
	users        repository.UserDirectory
	applications repository.ApplicationRepository
	cfg          DiscoveryConfig
	logger       *log.Logger
}

func NewJobDiscoveryUsecase(
	jobs repository.JobRepository,
	users repository.UserDirectory,
	applications repository.ApplicationRepository,
	cfg DiscoveryConfig,
	logger *log.Logger,
) *JobDiscovery {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &JobDiscovery{jobs: jobs, users: users, applications: applications, cfg: cfg, logger: logger}
}

func (u *JobDiscovery) List(ctx context.Context, p ListParams) (JobPage, error) {
	return u.list(ctx, p, false)
}

// MyJobs scopes the listing to one employer and adds applicant counts.
func (u *JobDiscovery) MyJobs(ctx context.Context, employerID uuid.UUID, p ListParams) (JobPage, error) {
	if employerID == uuid.Nil {
		return JobPage{}, ErrValidation
	}
	p.Filter.EmployerID = &employerID
	return u.list(ctx, p, true)
}

func (u *JobDiscovery) list(ctx context.Context, p ListParams, withCounts bool) (JobPage, error) {
	page, pageSize := u.coercePaging(p.Page, p.PageSize)

	items, total, err := u.jobs.Search(ctx, p.Filter, pageSize, (page-1)*pageSize)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Discovery] search failed: %v", err)
		}
		return JobPage{}, ErrInternal
	}

	views, err := u.decorate(ctx, items, withCounts)
	if err != nil {
		return JobPage{}, ErrInternal
	}

	return JobPage{
		Jobs:        views,
		Total:       total,
		CurrentPage: page,
		TotalPages:  totalPages(total, pageSize),
	}, nil
}

func (u *JobDiscovery) GetByID(ctx context.Context, id uuid.UUID, viewer *Actor) (JobDetail, error) {
	j, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return JobDetail{}, ErrNotFound
		}
		return JobDetail{}, ErrInternal
	}

	views, err := u.decorate(ctx, []repository.JobWithDistance{{Job: j}}, false)
	if err != nil || len(views) != 1 {
		return JobDetail{}, ErrInternal
	}

	detail := JobDetail{JobView: views[0]}

	if viewer != nil && viewer.Role == user.RoleLaborer {
		applied, err := u.applications.Exists(ctx, id, viewer.ID)
		if err != nil {
			return JobDetail{}, ErrInternal
		}
		detail.HasApplied = &applied
	}

	return detail, nil
}

// decorate joins employer summaries (and optionally applicant counts) in two
// batched lookups, never one query per job.
func (u *JobDiscovery) decorate(ctx context.Context, items []repository.JobWithDistance, withCounts bool) ([]JobView, error) {
	jobIDs := make([]uuid.UUID, 0, len(items))
	employerIDs := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		jobIDs = append(jobIDs, it.ID)
		if _, ok := seen[it.EmployerID]; !ok {
			seen[it.EmployerID] = struct{}{}
			employerIDs = append(employerIDs, it.EmployerID)
		}
	}

	employers, err := u.users.FindByIDs(ctx, employerIDs)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Discovery] employer lookup failed: %v", err)
		}
		return nil, err
	}

	var counts map[uuid.UUID]int
	if withCounts {
		counts, err = u.applications.CountByJobIDs(ctx, jobIDs)
		if err != nil {
			if u.logger != nil {
				u.logger.Printf("[Discovery] applicant count failed: %v", err)
			}
			return nil, err
		}
	}

	out := make([]JobView, 0, len(items))
	for _, it := range items {
		v := JobView{JobWithDistance: it}
		if emp, ok := employers[it.EmployerID]; ok {
			e := emp
			v.Employer = &e
		}
		if withCounts {
			c := counts[it.ID]
			v.ApplicantsCount = &c
		}
		out = append(out, v)
	}
	return out, nil
}

func (u *JobDiscovery) coercePaging(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = u.cfg.DefaultPageSize
	}
	if pageSize > u.cfg.MaxPageSize {
		pageSize = u.cfg.MaxPageSize
	}
	return page, pageSize
}

func totalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
