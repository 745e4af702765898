package events

import (
	"time"

	"github.com/spec-kit/request-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventRequestSubmitted EventType = "request_submitted"
	EventRequestAmended   EventType = "request_amended"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
}

// RequestSubmittedPayload payload.
type RequestSubmittedPayload struct {
	RequestID int64                  `json:"request_id"`
	Submitter string                 `json:"submitter"`
	Type      domain.RequestType     `json:"type"`
	Priority  domain.RequestPriority `json:"priority"`
	Title     string                 `json:"title"`
}

// RequestAmendedPayload payload. SourceRequestID is the row the amendment
// was copied from; RequestID is the newly inserted row.
type RequestAmendedPayload struct {
	SourceRequestID int64  `json:"source_request_id"`
	RequestID       int64  `json:"request_id"`
	Submitter       string `json:"submitter"`
}
