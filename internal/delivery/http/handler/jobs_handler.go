package handler

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"workhub/internal/delivery/http/middleware"
	"workhub/internal/domain/job"
	"workhub/internal/pkg/response"
	"workhub/internal/query"
	"workhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	jobs      usecase.JobUsecase
	discovery usecase.JobDiscoveryUsecase
}

func NewJobsHandler(jobs usecase.JobUsecase, discovery usecase.JobDiscoveryUsecase) *JobsHandler {
	return &JobsHandler{jobs: jobs, discovery: discovery}
}

// skillList accepts either a JSON array or a comma-separated string.
type skillList []string

func (s *skillList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*s = arr
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = splitCommaList(raw)
	return nil
}

type createJobRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	JobType             string     `json:"jobType"`
	City                string     `json:"city"`
	PayRateMin          float64    `json:"payRateMin"`
	PayRateMax          float64    `json:"payRateMax"`
	PayType             string     `json:"payType"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	RequiredSkills      skillList  `json:"requiredSkills"`
	ImageURL            string     `json:"imageUrl"`
}

type updateJobRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	JobType             string     `json:"jobType"`
	City                string     `json:"city"`
	PayRateMin          *float64   `json:"payRateMin"`
	PayRateMax          *float64   `json:"payRateMax"`
	PayType             string     `json:"payType"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	RequiredSkills      skillList  `json:"requiredSkills"`
	ImageURL            string     `json:"imageUrl"`
	Status              string     `json:"status"`
}

func (h *JobsHandler) HandleCreate(c fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.jobs.Create(c.Context(), actor.ID, usecase.JobInput{
		Title:               req.Title,
		Description:         req.Description,
		JobType:             req.JobType,
		City:                req.City,
		PayRateMin:          req.PayRateMin,
		PayRateMax:          req.PayRateMax,
		PayType:             req.PayType,
		ApplicationDeadline: req.ApplicationDeadline,
		RequiredSkills:      req.RequiredSkills,
		ImageURL:            req.ImageURL,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, created)
}

func (h *JobsHandler) HandleList(c fiber.Ctx) error {
	params, err := listParamsFromQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	}

	page, err := h.discovery.List(c.Context(), params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, page)
}

func (h *JobsHandler) HandleMyJobs(c fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	params, err := listParamsFromQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	}

	page, err := h.discovery.MyJobs(c.Context(), actor.ID, params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, page)
}

func (h *JobsHandler) HandleGet(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var viewer *usecase.Actor
	if actor, ok := actorFromCtx(c); ok {
		viewer = &actor
	}

	detail, err := h.discovery.GetByID(c.Context(), id, viewer)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, detail)
}

func (h *JobsHandler) HandleUpdate(c fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.jobs.Update(c.Context(), actor, id, usecase.JobUpdateInput{
		Title:               req.Title,
		Description:         req.Description,
		JobType:             req.JobType,
		City:                req.City,
		PayRateMin:          req.PayRateMin,
		PayRateMax:          req.PayRateMax,
		PayType:             req.PayType,
		ApplicationDeadline: req.ApplicationDeadline,
		RequiredSkills:      req.RequiredSkills,
		ImageURL:            req.ImageURL,
		Status:              req.Status,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, updated)
}

func (h *JobsHandler) HandleDelete(c fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	deleted, err := h.jobs.Delete(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"deletedId": deleted})
}

// listParamsFromQuery translates the query string into filter parameters.
// Paging values coerce to defaults; filter values that cannot mean anything
// (bad status, bad numbers) are rejected with 400 rather than silently
// matching everything.
func listParamsFromQuery(c fiber.Ctx) (usecase.ListParams, error) {
	p := usecase.ListParams{
		Page:     parseQueryIntLenient(c, "page"),
		PageSize: parseQueryIntLenient(c, "limit"),
	}

	if s := strings.TrimSpace(c.Query("status")); s != "" {
		st, ok := job.ParseStatus(s)
		if !ok {
			return usecase.ListParams{}, errors.New("invalid status filter")
		}
		p.Filter.Status = string(st)
	}

	p.Filter.JobTypes = splitCommaList(c.Query("jobType"))
	p.Filter.City = c.Query("city")
	p.Filter.Skills = splitCommaList(c.Query("skills"))
	p.Filter.DatePosted = c.Query("datePosted")
	p.Filter.Search = c.Query("search")

	var err error
	if p.Filter.MinPay, err = parseQueryFloat(c, "minPay"); err != nil {
		return usecase.ListParams{}, errors.New("invalid minPay filter")
	}
	if p.Filter.MaxPay, err = parseQueryFloat(c, "maxPay"); err != nil {
		return usecase.ListParams{}, errors.New("invalid maxPay filter")
	}

	if s := strings.TrimSpace(c.Query("employerId")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return usecase.ListParams{}, errors.New("invalid employerId filter")
		}
		p.Filter.EmployerID = &id
	}

	// partially supplied proximity params mean proximity is absent, not an
	// error and not a partial application
	p.Filter.Proximity = query.ProximityFromStrings(
		c.Query("lon"), c.Query("lat"), c.Query("maxDistance"),
	)

	return p, nil
}

func parseQueryIntLenient(c fiber.Ctx, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return v
}

func parseQueryFloat(c fiber.Ctx, key string) (*float64, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func splitCommaList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func actorFromCtx(c fiber.Ctx) (usecase.Actor, bool) {
	id, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return usecase.Actor{}, false
	}
	role, ok := middleware.RoleFromCtx(c)
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{ID: id, Role: role}, true
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrUpstream):
		return middleware.NewAppError(fiber.StatusBadGateway, response.MessageBadGateway, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
