package application

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("application already exists")
)

type Status string

const (
	StatusPending            Status = "Pending"
	StatusReviewed           Status = "Reviewed"
	StatusInterviewScheduled Status = "Interview Scheduled"
	StatusAccepted           Status = "Accepted"
	StatusRejected           Status = "Rejected"
)

type Application struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"jobId"`
	ApplicantID uuid.UUID `json:"applicantId"`

	Status         Status `json:"status"`
	ResumeURL      string `json:"resumeUrl"`
	CoverLetterURL string `json:"coverLetterUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var statuses = map[string]Status{
	"pending":             StatusPending,
	"reviewed":            StatusReviewed,
	"interview scheduled": StatusInterviewScheduled,
	"accepted":            StatusAccepted,
	"rejected":            StatusRejected,
}

func ParseStatus(s string) (Status, bool) {
	st, ok := statuses[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}
