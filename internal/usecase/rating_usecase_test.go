package usecase

import (
	"context"
	"errors"
	"testing"

	"workhub/internal/domain/rating"
	"workhub/internal/domain/user"

	"github.com/google/uuid"
)

func TestRatings_Rate_Validation(t *testing.T) {
	uc := NewRatingUsecase(&stubRatingRepo{}, &stubUserDirectory{})
	raterID := uuid.New()

	cases := []struct {
		name  string
		rater uuid.UUID
		in    RateInput
	}{
		{"missing rater", uuid.Nil, RateInput{TargetID: uuid.New(), Score: 3}},
		{"missing target", raterID, RateInput{Score: 3}},
		{"self rating", raterID, RateInput{TargetID: raterID, Score: 3}},
		{"score too low", raterID, RateInput{TargetID: uuid.New(), Score: 0}},
		{"score too high", raterID, RateInput{TargetID: uuid.New(), Score: 6}},
	}
	for _, tc := range cases {
		if _, err := uc.Rate(context.Background(), tc.rater, tc.in); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestRatings_Rate_TargetMissing(t *testing.T) {
	users := &stubUserDirectory{findFn: func(context.Context, uuid.UUID) (user.User, error) {
		return user.User{}, user.ErrNotFound
	}}
	uc := NewRatingUsecase(&stubRatingRepo{}, users)

	_, err := uc.Rate(context.Background(), uuid.New(), RateInput{TargetID: uuid.New(), Score: 4})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRatings_Rate_UpsertTrimsComment(t *testing.T) {
	var stored rating.Rating
	ratings := &stubRatingRepo{upsertFn: func(_ context.Context, r rating.Rating) (rating.Rating, error) {
		stored = r
		r.ID = uuid.New()
		return r, nil
	}}
	uc := NewRatingUsecase(ratings, &stubUserDirectory{})

	raterID, targetID := uuid.New(), uuid.New()
	jobID := uuid.New()
	got, err := uc.Rate(context.Background(), raterID, RateInput{
		TargetID: targetID,
		JobID:    &jobID,
		Score:    5,
		Comment:  "  great work  ",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID == uuid.Nil {
		t.Fatal("expected assigned id")
	}
	if stored.Comment != "great work" {
		t.Fatalf("expected trimmed comment, got %q", stored.Comment)
	}
	if stored.RaterID != raterID || stored.TargetID != targetID {
		t.Fatalf("unexpected parties: %+v", stored)
	}
	if stored.JobID == nil || *stored.JobID != jobID {
		t.Fatalf("expected job scope, got %v", stored.JobID)
	}
}

func TestRatings_ForUser(t *testing.T) {
	targetID := uuid.New()
	ratings := &stubRatingRepo{
		summaryFn: func(context.Context, uuid.UUID) (rating.Summary, error) {
			return rating.Summary{Average: 4.5, Count: 2}, nil
		},
		listFn: func(context.Context, uuid.UUID) ([]rating.Rating, error) {
			return []rating.Rating{{Score: 4}, {Score: 5}}, nil
		},
	}
	uc := NewRatingUsecase(ratings, &stubUserDirectory{})

	got, err := uc.ForUser(context.Background(), targetID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Summary.Average != 4.5 || got.Summary.Count != 2 {
		t.Fatalf("unexpected summary: %+v", got.Summary)
	}
	if len(got.Ratings) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(got.Ratings))
	}
}

func TestRatings_ForUser_TargetMissing(t *testing.T) {
	users := &stubUserDirectory{findFn: func(context.Context, uuid.UUID) (user.User, error) {
		return user.User{}, user.ErrNotFound
	}}
	uc := NewRatingUsecase(&stubRatingRepo{}, users)

	if _, err := uc.ForUser(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
