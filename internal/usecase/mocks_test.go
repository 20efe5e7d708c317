package usecase

import (
	"context"

	"workhub/internal/domain/application"
	"workhub/internal/domain/job"
	"workhub/internal/domain/rating"
	"workhub/internal/domain/user"
	"workhub/internal/geocode"
	"workhub/internal/query"
	"workhub/internal/repository"

	"github.com/google/uuid"
)

type stubJobRepo struct {
	createFn func(ctx context.Context, j job.Job) (job.Job, error)
	findFn   func(ctx context.Context, id uuid.UUID) (job.Job, error)
	updateFn func(ctx context.Context, id uuid.UUID, patch repository.JobPatch) (job.Job, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
	searchFn func(ctx context.Context, f query.Filter, limit, offset int) ([]repository.JobWithDistance, int, error)
}

func (m *stubJobRepo) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if m.createFn == nil {
		return j, nil
	}
	return m.createFn(ctx, j)
}

func (m *stubJobRepo) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	if m.findFn == nil {
		return job.Job{}, job.ErrNotFound
	}
	return m.findFn(ctx, id)
}

func (m *stubJobRepo) UpdatePartial(ctx context.Context, id uuid.UUID, patch repository.JobPatch) (job.Job, error) {
	if m.updateFn == nil {
		return job.Job{}, job.ErrNotFound
	}
	return m.updateFn(ctx, id, patch)
}

func (m *stubJobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *stubJobRepo) Search(ctx context.Context, f query.Filter, limit, offset int) ([]repository.JobWithDistance, int, error) {
	if m.searchFn == nil {
		return nil, 0, nil
	}
	return m.searchFn(ctx, f, limit, offset)
}

type stubApplicationRepo struct {
	createFn       func(ctx context.Context, a application.Application) (application.Application, error)
	findFn         func(ctx context.Context, id uuid.UUID) (application.Application, error)
	existsFn       func(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	countByJobsFn  func(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]int, error)
	listByJobFn    func(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	listByAppFn    func(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error)
}

func (m *stubApplicationRepo) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if m.createFn == nil {
		return a, nil
	}
	return m.createFn(ctx, a)
}

func (m *stubApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	if m.findFn == nil {
		return application.Application{}, application.ErrNotFound
	}
	return m.findFn(ctx, id)
}

func (m *stubApplicationRepo) Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	if m.existsFn == nil {
		return false, nil
	}
	return m.existsFn(ctx, jobID, applicantID)
}

func (m *stubApplicationRepo) CountByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if m.countByJobsFn == nil {
		return map[uuid.UUID]int{}, nil
	}
	return m.countByJobsFn(ctx, jobIDs)
}

func (m *stubApplicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	if m.listByJobFn == nil {
		return nil, nil
	}
	return m.listByJobFn(ctx, jobID)
}

func (m *stubApplicationRepo) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	if m.listByAppFn == nil {
		return nil, nil
	}
	return m.listByAppFn(ctx, applicantID)
}

func (m *stubApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	if m.updateStatusFn == nil {
		return application.Application{}, application.ErrNotFound
	}
	return m.updateStatusFn(ctx, id, status)
}

type stubRatingRepo struct {
	upsertFn  func(ctx context.Context, r rating.Rating) (rating.Rating, error)
	listFn    func(ctx context.Context, targetID uuid.UUID) ([]rating.Rating, error)
	summaryFn func(ctx context.Context, targetID uuid.UUID) (rating.Summary, error)
}

func (m *stubRatingRepo) Upsert(ctx context.Context, r rating.Rating) (rating.Rating, error) {
	if m.upsertFn == nil {
		return r, nil
	}
	return m.upsertFn(ctx, r)
}

func (m *stubRatingRepo) ListByTarget(ctx context.Context, targetID uuid.UUID) ([]rating.Rating, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, targetID)
}

func (m *stubRatingRepo) SummaryForTarget(ctx context.Context, targetID uuid.UUID) (rating.Summary, error) {
	if m.summaryFn == nil {
		return rating.Summary{}, nil
	}
	return m.summaryFn(ctx, targetID)
}

type stubUserDirectory struct {
	findFn    func(ctx context.Context, id uuid.UUID) (user.User, error)
	findIDsFn func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Summary, error)
}

func (m *stubUserDirectory) FindByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	if m.findFn == nil {
		return user.User{ID: id}, nil
	}
	return m.findFn(ctx, id)
}

func (m *stubUserDirectory) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Summary, error) {
	if m.findIDsFn == nil {
		return map[uuid.UUID]user.Summary{}, nil
	}
	return m.findIDsFn(ctx, ids)
}

type stubGeocoder struct {
	calls     int
	resolveFn func(ctx context.Context, cityText string) (geocode.Result, error)
}

func (m *stubGeocoder) Resolve(ctx context.Context, cityText string) (geocode.Result, error) {
	m.calls++
	if m.resolveFn == nil {
		return geocode.Result{}, geocode.ErrUnavailable
	}
	return m.resolveFn(ctx, cityText)
}

type stubMediaCleaner struct {
	removed []string
	err     error
}

func (m *stubMediaCleaner) Remove(_ context.Context, ref string) error {
	m.removed = append(m.removed, ref)
	return m.err
}

type stubNotifier struct {
	employerIDs []uuid.UUID
	jobTitles   []string
}

func (m *stubNotifier) NotifyApplicationReceived(employerID, jobID, applicationID uuid.UUID, jobTitle string) {
	m.employerIDs = append(m.employerIDs, employerID)
	m.jobTitles = append(m.jobTitles, jobTitle)
}
