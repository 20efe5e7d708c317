package handler

import (
	"workhub/internal/delivery/http/middleware"
	"workhub/internal/pkg/response"
	"workhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RatingsHandler struct {
	uc usecase.RatingUsecase
}

func NewRatingsHandler(uc usecase.RatingUsecase) *RatingsHandler {
	return &RatingsHandler{uc: uc}
}

type rateRequest struct {
	TargetID uuid.UUID  `json:"targetId"`
	JobID    *uuid.UUID `json:"jobId"`
	Score    int        `json:"score"`
	Comment  string     `json:"comment"`
}

func (h *RatingsHandler) HandleRate(c fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req rateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	stored, err := h.uc.Rate(c.Context(), actor.ID, usecase.RateInput{
		TargetID: req.TargetID,
		JobID:    req.JobID,
		Score:    req.Score,
		Comment:  req.Comment,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, stored)
}

func (h *RatingsHandler) HandleForUser(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	out, err := h.uc.ForUser(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
