package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"workhub/internal/domain/application"
	"workhub/internal/domain/job"
	"workhub/internal/repository"

	"github.com/google/uuid"
)

// ApplicationNotifier pushes application events to connected employers.
// Implementations must not block the request path.
type ApplicationNotifier interface {
	NotifyApplicationReceived(employerID, jobID, applicationID uuid.UUID, jobTitle string)
}

type ApplyInput struct {
	ResumeURL      string
	CoverLetterURL string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, jobID, applicantID uuid.UUID, in ApplyInput) (application.Application, error)
	UpdateStatus(ctx context.Context, actor Actor, applicationID uuid.UUID, status string) (application.Application, error)
	ListForJob(ctx context.Context, actor Actor, jobID uuid.UUID) ([]application.Application, error)
	ListForApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error)
}

type Applications struct {
	apps     repository.ApplicationRepository
	jobs     repository.JobRepository
	notifier ApplicationNotifier
	logger   *log.Logger
}

func NewApplicationUsecase(apps repository.ApplicationRepository, jobs repository.JobRepository, notifier ApplicationNotifier, logger *log.Logger) *Applications {
	return &Applications{apps: apps, jobs: jobs, notifier: notifier, logger: logger}
}

func (u *Applications) Apply(ctx context.Context, jobID, applicantID uuid.UUID, in ApplyInput) (application.Application, error) {
	if strings.TrimSpace(in.ResumeURL) == "" {
		return application.Application{}, fmt.Errorf("%w: resume is required", ErrValidation)
	}

	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	if j.Status != job.StatusActive {
		return application.Application{}, fmt.Errorf("%w: job is not accepting applications", ErrValidation)
	}

	// fast path for a friendly error; the unique constraint below is the
	// actual guarantee under concurrent submissions
	exists, err := u.apps.Exists(ctx, jobID, applicantID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, fmt.Errorf("%w: already applied", ErrConflict)
	}

	created, err := u.apps.Create(ctx, application.Application{
		JobID:          jobID,
		ApplicantID:    applicantID,
		Status:         application.StatusPending,
		ResumeURL:      strings.TrimSpace(in.ResumeURL),
		CoverLetterURL: strings.TrimSpace(in.CoverLetterURL),
	})
	if err != nil {
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, fmt.Errorf("%w: already applied", ErrConflict)
		}
		return application.Application{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.NotifyApplicationReceived(j.EmployerID, j.ID, created.ID, j.Title)
	}
	return created, nil
}

func (u *Applications) UpdateStatus(ctx context.Context, actor Actor, applicationID uuid.UUID, status string) (application.Application, error) {
	st, ok := application.ParseStatus(status)
	if !ok {
		return application.Application{}, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	a, err := u.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	j, err := u.jobs.FindByID(ctx, a.JobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	if !actor.IsAdmin() && j.EmployerID != actor.ID {
		return application.Application{}, ErrForbidden
	}

	updated, err := u.apps.UpdateStatus(ctx, applicationID, st)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	return updated, nil
}

func (u *Applications) ListForJob(ctx context.Context, actor Actor, jobID uuid.UUID) ([]application.Application, error) {
	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}
	if !actor.IsAdmin() && j.EmployerID != actor.ID {
		return nil, ErrForbidden
	}

	out, err := u.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Applications) ListForApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	out, err := u.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
