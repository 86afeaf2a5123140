package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeSurveySubmitted is emitted once per committed survey submission.
const EventTypeSurveySubmitted = "survey_submitted"

// EventSource identifies events produced by the API server.
const EventSource = "wellmind-api"

// Event is a submission event published to Kafka and the OTel log pipeline.
type Event struct {
	ID                string    `json:"id"`
	EventType         string    `json:"event_type"`
	Source            string    `json:"source"`
	EmployeeID        int64     `json:"employee_id"`
	Department        string    `json:"department,omitempty"`
	ResultID          int64     `json:"result_id"`
	Label             string    `json:"label"`
	Score             int       `json:"score"`
	LedgerDelivered   bool      `json:"ledger_delivered"`
	WorkflowDelivered bool      `json:"workflow_delivered"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewSubmissionEvent returns a survey_submitted event with a fresh id, stamped now.
func NewSubmissionEvent(employeeID, resultID int64, department, label string, score int, ledgerDelivered, workflowDelivered bool) *Event {
	return &Event{
		ID:                uuid.New().String(),
		EventType:         EventTypeSurveySubmitted,
		Source:            EventSource,
		EmployeeID:        employeeID,
		Department:        department,
		ResultID:          resultID,
		Label:             label,
		Score:             score,
		LedgerDelivered:   ledgerDelivered,
		WorkflowDelivered: workflowDelivered,
		CreatedAt:         time.Now().UTC(),
	}
}
