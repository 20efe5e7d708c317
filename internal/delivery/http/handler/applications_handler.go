package handler

import (
	"mime/multipart"

	"workhub/internal/delivery/http/middleware"
	"workhub/internal/pkg/response"
	"workhub/internal/storage"
	"workhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationsHandler struct {
	uc      usecase.ApplicationUsecase
	uploads storage.Store
}

func NewApplicationsHandler(uc usecase.ApplicationUsecase, uploads storage.Store) *ApplicationsHandler {
	return &ApplicationsHandler{uc: uc, uploads: uploads}
}

type updateApplicationStatusRequest struct {
	Status string `json:"status"`
}

// HandleApply accepts a multipart form with a required resume and optional
// cover letter, stores both, then records the application.
func (h *ApplicationsHandler) HandleApply(c fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	resume, err := c.FormFile("resume")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file is required", nil, err)
	}
	resumeURL, err := h.storeFile(c, "resumes", resume)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	coverURL := ""
	if cover, err := c.FormFile("coverLetter"); err == nil && cover != nil {
		coverURL, err = h.storeFile(c, "cover-letters", cover)
		if err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	created, err := h.uc.Apply(c.Context(), jobID, actor.ID, usecase.ApplyInput{
		ResumeURL:      resumeURL,
		CoverLetterURL: coverURL,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, created)
}

func (h *ApplicationsHandler) HandleListForJob(c fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	items, err := h.uc.ListForJob(c.Context(), actor, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ApplicationsHandler) HandleMyApplications(c fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListForApplicant(c.Context(), actor.ID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ApplicationsHandler) HandleUpdateStatus(c fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	var req updateApplicationStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateStatus(c.Context(), actor, id, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, updated)
}

func (h *ApplicationsHandler) storeFile(c fiber.Ctx, category string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.uploads.Save(c.Context(), category, fh.Filename, f)
}
