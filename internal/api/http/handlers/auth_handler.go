package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-tracker/internal/api/dto"
	"github.com/spec-kit/request-tracker/internal/auth"
	"github.com/spec-kit/request-tracker/internal/service"
	apperrors "github.com/spec-kit/request-tracker/pkg/util"
)

// AuthHandler exposes credential login and session reading.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	identity, token, exp, err := h.auth.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.SessionResponse{
				ID:    identity.ID,
				Email: identity.Email,
				Role:  identity.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Session handles GET /auth/session. The response is derived from the
// verified token payload only.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(dto.SessionResponse{
		ID:    principal.Identity.ID,
		Email: principal.Identity.Email,
		Role:  principal.Identity.Role,
	})
}
