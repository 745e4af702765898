package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-tracker/internal/api/dto"
	"github.com/spec-kit/request-tracker/internal/service"
	apperrors "github.com/spec-kit/request-tracker/pkg/util"
)

// UsersHandler exposes account management endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// SignUp handles POST /users/signup.
func (h *UsersHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.auth.SignUp(c.Context(), req.Name, req.Email, req.Password); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Sign-up successful",
	})
}
