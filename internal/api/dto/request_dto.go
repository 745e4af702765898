package dto

import (
	"time"

	"github.com/spec-kit/request-tracker/internal/domain"
)

// CreateRequestRequest payload. Field names follow the wire contract the
// dashboard clients already speak.
type CreateRequestRequest struct {
	Submitter    string `json:"submitter"`
	RequestTitle string `json:"requestTitle"`
	Details      string `json:"details"`
	Phone        string `json:"phone"`
	RequestType  string `json:"requestType"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
}

// AppendDetailsRequest payload for amending a request.
type AppendDetailsRequest struct {
	Details string `json:"details"`
}

// RequestResponse is a single request row.
type RequestResponse struct {
	ID           int64                  `json:"id"`
	Submitter    string                 `json:"submitter"`
	Type         domain.RequestType     `json:"type"`
	Priority     domain.RequestPriority `json:"priority"`
	Status       domain.RequestStatus   `json:"status"`
	CreatedAt    time.Time              `json:"createdAt"`
	ChangedAt    time.Time              `json:"changedAt"`
	Details      string                 `json:"details"`
	Phone        string                 `json:"phone"`
	RequestTitle string                 `json:"requestTitle"`
}

// CreatedRequestResponse wraps the generated identifier.
type CreatedRequestResponse struct {
	ID int64 `json:"id"`
}

// RequestDetailResponse combines the request row, the resolved submitter
// account (null when unresolved) and the submitter's total request count.
type RequestDetailResponse struct {
	Requests     RequestResponse `json:"requests"`
	Users        *UserResponse   `json:"users"`
	RequestCount int64           `json:"requestCount"`
}
