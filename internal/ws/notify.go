package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ApplicationReceivedEvent struct {
	Type          string `json:"type"`
	JobID         string `json:"jobId"`
	JobTitle      string `json:"jobTitle"`
	ApplicationID string `json:"applicationId"`
	Timestamp     string `json:"timestamp"`
}

// Notifier adapts the hub to the usecase-facing notification interface.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyApplicationReceived(employerID, jobID, applicationID uuid.UUID, jobTitle string) {
	if n == nil || n.hub == nil {
		return
	}

	evt := ApplicationReceivedEvent{
		Type:          "application_received",
		JobID:         jobID.String(),
		JobTitle:      jobTitle,
		ApplicationID: applicationID.String(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Send(employerID, b)
}
