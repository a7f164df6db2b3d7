// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/farhanrds/scholarship-finder/internal/model"
)

// ScholarshipEvent is published whenever a scholarship is created, updated
// or deleted.  It carries enough information for downstream consumers to
// log, notify subscribers, or trigger analytics without querying the
// primary database.
type ScholarshipEvent struct {
	ID            string `json:"event_id"`
	Action        string `json:"action"` // created | updated | deleted
	ScholarshipID uint64 `json:"scholarship_id"`
	Name          string `json:"name"`
	University    string `json:"university"`
	Country       string `json:"country"`
	Major         string `json:"major"`
	FundingType   string `json:"funding_type"`
	OccurredAt    string `json:"occurred_at"`
}

// NewScholarshipEvent stamps an event with a fresh id and the current time.
func NewScholarshipEvent(action string, s model.Scholarship) ScholarshipEvent {
	return ScholarshipEvent{
		ID:            uuid.NewString(),
		Action:        action,
		ScholarshipID: s.ID,
		Name:          s.Name,
		University:    s.University,
		Country:       s.Country,
		Major:         s.Major,
		FundingType:   s.FundingType,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}
