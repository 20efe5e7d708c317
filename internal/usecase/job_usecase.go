package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"workhub/internal/domain/job"
	"workhub/internal/domain/user"
	"workhub/internal/geocode"
	"workhub/internal/repository"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

type JobInput struct {
	Title               string
	Description         string
	JobType             string
	City                string
	PayRateMin          float64
	PayRateMax          float64
	PayType             string
	ApplicationDeadline *time.Time
	RequiredSkills      []string
	ImageURL            string
}

// JobUpdateInput mirrors the store's merge contract: empty strings and nil
// pointers leave the stored field unchanged.
type JobUpdateInput struct {
	Title               string
	Description         string
	JobType             string
	City                string
	PayRateMin          *float64
	PayRateMax          *float64
	PayType             string
	ApplicationDeadline *time.Time
	RequiredSkills      []string
	ImageURL            string
	Status              string
}

type JobUsecase interface {
	Create(ctx context.Context, employerID uuid.UUID, in JobInput) (job.Job, error)
	Update(ctx context.Context, actor Actor, jobID uuid.UUID, in JobUpdateInput) (job.Job, error)
	Delete(ctx context.Context, actor Actor, jobID uuid.UUID) (uuid.UUID, error)
}

// MediaCleaner removes stored uploads once the rows referencing them are
// gone. Cleanup is best-effort; failures are logged, never surfaced.
type MediaCleaner interface {
	Remove(ctx context.Context, ref string) error
}

type JobConfig struct {
	DefaultImageURL string

	// StrictGeocoding rejects writes when resolution fails instead of
	// persisting the sentinel coordinate.
	StrictGeocoding bool
}

type Jobs struct {
	repo     repository.JobRepository
	apps     repository.ApplicationRepository
	geocoder geocode.Geocoder
	media    MediaCleaner
	cfg      JobConfig
	logger   *log.Logger
}

func NewJobUsecase(
	repo repository.JobRepository,
	apps repository.ApplicationRepository,
	geocoder geocode.Geocoder,
	media MediaCleaner,
	cfg JobConfig,
	logger *log.Logger,
) *Jobs {
	return &Jobs{repo: repo, apps: apps, geocoder: geocoder, media: media, cfg: cfg, logger: logger}
}

func (u *Jobs) Create(ctx context.Context, employerID uuid.UUID, in JobInput) (job.Job, error) {
	if employerID == uuid.Nil {
		return job.Job{}, fmt.Errorf("%w: missing employer", ErrValidation)
	}

	title := strings.TrimSpace(in.Title)
	city := strings.TrimSpace(in.City)
	if title == "" {
		return job.Job{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if city == "" {
		return job.Job{}, fmt.Errorf("%w: city is required", ErrValidation)
	}
	jobType, ok := job.ParseType(in.JobType)
	if !ok {
		return job.Job{}, fmt.Errorf("%w: invalid job type %q", ErrValidation, in.JobType)
	}
	payType, ok := job.ParsePayType(in.PayType)
	if !ok {
		return job.Job{}, fmt.Errorf("%w: invalid pay type %q", ErrValidation, in.PayType)
	}
	if in.PayRateMin < 0 || in.PayRateMax < 0 {
		return job.Job{}, fmt.Errorf("%w: pay rates must be non-negative", ErrValidation)
	}

	point, address, err := u.resolveLocation(ctx, city)
	if err != nil {
		return job.Job{}, err
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	if imageURL == "" {
		imageURL = u.cfg.DefaultImageURL
	}

	created, err := u.repo.Create(ctx, job.Job{
		EmployerID:          employerID,
		Title:               title,
		Description:         strings.TrimSpace(in.Description),
		Type:                jobType,
		City:                city,
		AddressText:         address,
		Location:            point,
		PayRateMin:          in.PayRateMin,
		PayRateMax:          in.PayRateMax,
		PayType:             payType,
		ApplicationDeadline: in.ApplicationDeadline,
		RequiredSkills:      cleanSkills(in.RequiredSkills),
		ImageURL:            imageURL,
		Status:              job.StatusActive,
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] create failed employer=%s error=%v", employerID, err)
		}
		return job.Job{}, ErrInternal
	}
	return created, nil
}

func (u *Jobs) Update(ctx context.Context, actor Actor, jobID uuid.UUID, in JobUpdateInput) (job.Job, error) {
	stored, err := u.repo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}

	if !actor.IsAdmin() && stored.EmployerID != actor.ID {
		return job.Job{}, ErrForbidden
	}

	patch := repository.JobPatch{
		Title:               in.Title,
		Description:         in.Description,
		ImageURL:            in.ImageURL,
		PayRateMin:          in.PayRateMin,
		PayRateMax:          in.PayRateMax,
		ApplicationDeadline: in.ApplicationDeadline,
		RequiredSkills:      in.RequiredSkills,
	}
	if patch.RequiredSkills != nil {
		patch.RequiredSkills = cleanSkills(patch.RequiredSkills)
	}

	if s := strings.TrimSpace(in.JobType); s != "" {
		t, ok := job.ParseType(s)
		if !ok {
			return job.Job{}, fmt.Errorf("%w: invalid job type %q", ErrValidation, s)
		}
		patch.Type = string(t)
	}
	if s := strings.TrimSpace(in.PayType); s != "" {
		p, ok := job.ParsePayType(s)
		if !ok {
			return job.Job{}, fmt.Errorf("%w: invalid pay type %q", ErrValidation, s)
		}
		patch.PayType = string(p)
	}
	if s := strings.TrimSpace(in.Status); s != "" {
		st, ok := job.ParseStatus(s)
		if !ok {
			return job.Job{}, fmt.Errorf("%w: invalid status %q", ErrValidation, s)
		}
		// Filled and Closed are terminal for owners; only admins force
		// them back open
		if stored.Status.Terminal() && st != stored.Status && !actor.IsAdmin() {
			return job.Job{}, fmt.Errorf("%w: job is %s", ErrValidation, stored.Status)
		}
		patch.Status = string(st)
	}

	// re-geocode only when the city text actually changes; a no-op city in
	// the patch must not touch the stored coordinates
	if city := strings.TrimSpace(in.City); city != "" && city != stored.City {
		point, address, err := u.resolveLocation(ctx, city)
		if err != nil {
			return job.Job{}, err
		}
		patch.City = city
		patch.AddressText = address
		patch.Location = &point
	}

	updated, err := u.repo.UpdatePartial(ctx, jobID, patch)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	return updated, nil
}

func (u *Jobs) Delete(ctx context.Context, actor Actor, jobID uuid.UUID) (uuid.UUID, error) {
	stored, err := u.repo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, ErrInternal
	}

	if !actor.IsAdmin() && stored.EmployerID != actor.ID {
		return uuid.Nil, ErrForbidden
	}

	// collect upload references before the row (and its applications)
	// cascade away
	refs := u.mediaRefs(ctx, stored)

	if err := u.repo.Delete(ctx, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, ErrInternal
	}

	u.cleanupMedia(ctx, refs)
	return jobID, nil
}

func (u *Jobs) mediaRefs(ctx context.Context, stored job.Job) []string {
	refs := make([]string, 0, 4)
	// the shared placeholder image is never removed
	if stored.ImageURL != "" && stored.ImageURL != u.cfg.DefaultImageURL {
		refs = append(refs, stored.ImageURL)
	}
	if u.apps != nil {
		apps, err := u.apps.ListByJob(ctx, stored.ID)
		if err != nil {
			if u.logger != nil {
				u.logger.Printf("[Jobs] media listing failed job=%s error=%v", stored.ID, err)
			}
			return refs
		}
		for _, a := range apps {
			refs = append(refs, a.ResumeURL, a.CoverLetterURL)
		}
	}
	return refs
}

func (u *Jobs) cleanupMedia(ctx context.Context, refs []string) {
	if u.media == nil {
		return
	}
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if err := u.media.Remove(ctx, ref); err != nil && u.logger != nil {
			u.logger.Printf("[Jobs] media cleanup failed ref=%q error=%v", ref, err)
		}
	}
}

// resolveLocation applies the configured degradation policy: strict mode
// surfaces the failure, the default persists the sentinel and proceeds so a
// flaky provider never blocks a write.
func (u *Jobs) resolveLocation(ctx context.Context, city string) (job.Point, string, error) {
	if u.geocoder == nil {
		return job.Point{}, city, nil
	}

	res, err := u.geocoder.Resolve(ctx, city)
	if err != nil {
		if u.cfg.StrictGeocoding {
			return job.Point{}, "", fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		if u.logger != nil {
			u.logger.Printf("[Jobs] geocode failed, storing sentinel city=%q error=%v", city, err)
		}
		return job.Point{}, city, nil
	}
	return job.Point{Lon: res.Lon, Lat: res.Lat}, res.FormattedAddress, nil
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
