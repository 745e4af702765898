package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-tracker/internal/api/dto"
	"github.com/spec-kit/request-tracker/internal/domain"
	"github.com/spec-kit/request-tracker/internal/service"
	apperrors "github.com/spec-kit/request-tracker/pkg/util"
)

// RequestsHandler manages request submission and retrieval endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// List GET /requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	requests, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, requestResponse(&requests[i]))
	}
	return c.JSON(items)
}

// Create POST /requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.service.Submit(c.Context(), service.SubmitInput{
		Submitter: req.Submitter,
		Title:     req.RequestTitle,
		Details:   req.Details,
		Phone:     req.Phone,
		Type:      req.RequestType,
		Priority:  req.Priority,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Request added successfully",
		"request": dto.CreatedRequestResponse{ID: request.ID},
	})
}

// Get GET /requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid request id", nil)
	}

	detail, err := h.service.Detail(c.Context(), id)
	if err != nil {
		return err
	}

	resp := dto.RequestDetailResponse{
		Requests:     requestResponse(detail.Request),
		RequestCount: detail.RequestCount,
	}
	if detail.User != nil {
		user := userResponse(detail.User)
		resp.Users = &user
	}
	return c.JSON(resp)
}

// AppendDetails POST /requests/:id/details. Amendments are append-only: a
// new row is inserted with the accumulated details text, the original row
// stays untouched.
func (h *RequestsHandler) AppendDetails(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid request id", nil)
	}

	var req dto.AppendDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.service.AppendDetails(c.Context(), id, req.Details)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Request details appended",
		"request": dto.CreatedRequestResponse{ID: request.ID},
	})
}

// Summary GET /requests/summary. Internal-role dashboard aggregate.
func (h *RequestsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.StatusSummary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"statuses": summary})
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func requestResponse(request *domain.Request) dto.RequestResponse {
	return dto.RequestResponse{
		ID:           request.ID,
		Submitter:    request.Submitter,
		Type:         request.Type,
		Priority:     request.Priority,
		Status:       request.Status,
		CreatedAt:    request.CreatedAt,
		ChangedAt:    request.ChangedAt,
		Details:      request.Details,
		Phone:        request.Phone,
		RequestTitle: request.Title,
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.EmailValue(),
		Provider:  user.Provider,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
