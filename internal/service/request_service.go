package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/request-tracker/internal/domain"
	"github.com/spec-kit/request-tracker/internal/events"
	"github.com/spec-kit/request-tracker/internal/repository"
	apperrors "github.com/spec-kit/request-tracker/pkg/util"
)

// RequestService coordinates the request lifecycle: submission, listing,
// detail-with-history retrieval and append-only amendments.
type RequestService struct {
	requests   repository.RequestRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// SubmitInput describes a raw submission payload. Enum-typed fields are
// plain strings on purpose: values outside the documented sets are stored
// verbatim, enum enforcement belongs to the presentation layer.
type SubmitInput struct {
	Submitter string
	Title     string
	Details   string
	Phone     string
	Type      string
	Priority  string
	Status    string
}

// RequestDetail is the combined detail view. User is nil when the submitter
// name resolves to zero or more than one account.
type RequestDetail struct {
	Request      *domain.Request
	User         *domain.User
	RequestCount int64
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Submit persists a new request, applying field defaults exactly once.
func (s *RequestService) Submit(ctx context.Context, input SubmitInput) (*domain.Request, error) {
	if strings.TrimSpace(input.Submitter) == "" {
		return nil, apperrors.NewValidationError("submitter is required", nil)
	}

	request := &domain.Request{
		Submitter: input.Submitter,
		Type:      domain.RequestType(input.Type),
		Priority:  domain.RequestPriority(input.Priority),
		Status:    domain.RequestStatus(input.Status),
		Details:   input.Details,
		Phone:     input.Phone,
		Title:     input.Title,
	}
	if request.Type == "" {
		request.Type = domain.RequestTypeService
	}
	if request.Priority == "" {
		request.Priority = domain.RequestPriorityUnassigned
	}
	if request.Status == "" {
		request.Status = domain.RequestStatusNew
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type: events.EventRequestSubmitted,
		Payload: events.RequestSubmittedPayload{
			RequestID: request.ID,
			Submitter: request.Submitter,
			Type:      request.Type,
			Priority:  request.Priority,
			Title:     request.Title,
		},
	})
	return request, nil
}

// List returns all requests as stored.
func (s *RequestService) List(ctx context.Context) ([]domain.Request, error) {
	return s.requests.List(ctx)
}

// Detail fetches a request together with its submitter's account (when the
// name resolves to exactly one user) and the submitter's total request
// count. A blank submitter name short-circuits with a count of zero.
func (s *RequestService) Detail(ctx context.Context, id int64) (*RequestDetail, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"id": id})
		}
		return nil, err
	}

	detail := &RequestDetail{Request: request}

	name := request.Submitter
	if strings.TrimSpace(name) == "" {
		return detail, nil
	}

	matches, err := s.users.ListByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(matches) == 1 {
		detail.User = &matches[0]
	}

	count, err := s.requests.CountBySubmitter(ctx, name)
	if err != nil {
		return nil, err
	}
	detail.RequestCount = count
	return detail, nil
}

// AppendDetails amends a request by inserting a new row that carries the
// accumulated details text forward plus a timestamped note. The source row
// is never mutated; this keeps the full text history as separate entries.
func (s *RequestService) AppendDetails(ctx context.Context, id int64, note string) (*domain.Request, error) {
	if strings.TrimSpace(note) == "" {
		return nil, apperrors.NewValidationError("details note is required", nil)
	}

	source, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"id": id})
		}
		return nil, err
	}

	amended := &domain.Request{
		Submitter: source.Submitter,
		Type:      source.Type,
		Priority:  source.Priority,
		Status:    source.Status,
		Details:   fmt.Sprintf("%s\n\n[%s]: %s", source.Details, time.Now().Format(time.RFC1123), note),
		Phone:     source.Phone,
		Title:     source.Title,
	}
	if err := s.requests.Create(ctx, amended); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type: events.EventRequestAmended,
		Payload: events.RequestAmendedPayload{
			SourceRequestID: source.ID,
			RequestID:       amended.ID,
			Submitter:       amended.Submitter,
		},
	})
	return amended, nil
}

// StatusSummary returns the number of requests per status.
func (s *RequestService) StatusSummary(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	return s.requests.CountByStatus(ctx)
}

func (s *RequestService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
