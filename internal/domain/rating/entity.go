package rating

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("rating not found")
)

const (
	MinScore = 1
	MaxScore = 5
)

type Rating struct {
	ID       uuid.UUID  `json:"id"`
	RaterID  uuid.UUID  `json:"raterId"`
	TargetID uuid.UUID  `json:"targetId"`
	JobID    *uuid.UUID `json:"jobId,omitempty"`

	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Summary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
