package domain

import "time"

// RequestType enumerates the supported request categories.
type RequestType string

const (
	RequestTypeService   RequestType = "service"
	RequestTypeTechnical RequestType = "technical"
)

// RequestPriority enumerates triage urgency.
type RequestPriority string

const (
	RequestPriorityUnassigned RequestPriority = "unassigned"
	RequestPriorityLow        RequestPriority = "low"
	RequestPriorityMedium     RequestPriority = "medium"
	RequestPriorityHigh       RequestPriority = "high"
)

// RequestStatus enumerates lifecycle states: new -> open -> resolved -> closed.
type RequestStatus string

const (
	RequestStatusNew      RequestStatus = "new"
	RequestStatusOpen     RequestStatus = "open"
	RequestStatusResolved RequestStatus = "resolved"
	RequestStatusClosed   RequestStatus = "closed"
)

// Request is a submitted service or technical ticket. Submitter is free text,
// matched against User.Name by equality only; it is not a foreign key.
// Requests are never updated in place: amendments insert a new row carrying
// the accumulated details text forward.
type Request struct {
	ID        int64
	Submitter string
	Type      RequestType
	Priority  RequestPriority
	Status    RequestStatus
	CreatedAt time.Time
	ChangedAt time.Time
	Details   string
	Phone     string
	Title     string
}
