package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"workhub/internal/domain/rating"
	"workhub/internal/domain/user"
	"workhub/internal/repository"

	"github.com/google/uuid"
)

type RateInput struct {
	TargetID uuid.UUID
	JobID    *uuid.UUID
	Score    int
	Comment  string
}

type UserRatings struct {
	Summary rating.Summary  `json:"summary"`
	Ratings []rating.Rating `json:"ratings"`
}

type RatingUsecase interface {
	Rate(ctx context.Context, raterID uuid.UUID, in RateInput) (rating.Rating, error)
	ForUser(ctx context.Context, targetID uuid.UUID) (UserRatings, error)
}

type Ratings struct {
	ratings repository.RatingRepository
	users   repository.UserDirectory
}

func NewRatingUsecase(ratings repository.RatingRepository, users repository.UserDirectory) *Ratings {
	return &Ratings{ratings: ratings, users: users}
}

func (u *Ratings) Rate(ctx context.Context, raterID uuid.UUID, in RateInput) (rating.Rating, error) {
	if raterID == uuid.Nil || in.TargetID == uuid.Nil {
		return rating.Rating{}, fmt.Errorf("%w: missing rater or target", ErrValidation)
	}
	if raterID == in.TargetID {
		return rating.Rating{}, fmt.Errorf("%w: cannot rate yourself", ErrValidation)
	}
	if in.Score < rating.MinScore || in.Score > rating.MaxScore {
		return rating.Rating{}, fmt.Errorf("%w: score must be between %d and %d", ErrValidation, rating.MinScore, rating.MaxScore)
	}

	if _, err := u.users.FindByID(ctx, in.TargetID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return rating.Rating{}, ErrNotFound
		}
		return rating.Rating{}, ErrInternal
	}

	stored, err := u.ratings.Upsert(ctx, rating.Rating{
		RaterID:  raterID,
		TargetID: in.TargetID,
		JobID:    in.JobID,
		Score:    in.Score,
		Comment:  strings.TrimSpace(in.Comment),
	})
	if err != nil {
		return rating.Rating{}, ErrInternal
	}
	return stored, nil
}

func (u *Ratings) ForUser(ctx context.Context, targetID uuid.UUID) (UserRatings, error) {
	if _, err := u.users.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return UserRatings{}, ErrNotFound
		}
		return UserRatings{}, ErrInternal
	}

	summary, err := u.ratings.SummaryForTarget(ctx, targetID)
	if err != nil {
		return UserRatings{}, ErrInternal
	}
	list, err := u.ratings.ListByTarget(ctx, targetID)
	if err != nil {
		return UserRatings{}, ErrInternal
	}

	return UserRatings{Summary: summary, Ratings: list}, nil
}
