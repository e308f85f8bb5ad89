package handlers

import (
	"errors"
	"fmt"

	"jobdesk-api/internal/config"
	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/core/services"
	"jobdesk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// GoogleAuthRequest represents a Google sign-in request body
type GoogleAuthRequest struct {
	TokenID string `json:"token_id"`
}

// RefreshRequest represents a token refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new user with a password credential
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Self-registration never grants elevated roles
	input.Role = ""

	result, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		if mapped := mapAuthError(c, err); mapped != nil {
			return mapped
		}
		return response.InternalServerError(c, "Failed to register user")
	}

	return response.Created(c, "User registered successfully", result)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate by email and password and return tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		if mapped := mapAuthError(c, err); mapped != nil {
			return mapped
		}
		return response.InternalServerError(c, "Failed to login")
	}

	return response.Success(c, "Login successful", result)
}

// GoogleAuth handles Google ID token sign-in
// @Summary Sign in with Google
// @Description Verify a Google ID token and sign the holder in, creating an account on first use
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body GoogleAuthRequest true "Google ID token"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/google [post]
func (h *AuthHandler) GoogleAuth(c *fiber.Ctx) error {
	var req GoogleAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.GoogleSignIn(c.Context(), req.TokenID)
	if err != nil {
		if mapped := mapAuthError(c, err); mapped != nil {
			return mapped
		}
		return response.InternalServerError(c, "Failed to sign in")
	}

	return response.Success(c, "Login successful", result)
}

// Refresh handles refresh token rotation
// @Summary Refresh tokens
// @Description Exchange a valid refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return response.BadRequest(c, "Refresh token is required")
	}

	result, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			return response.Unauthorized(c, "Refresh token expired")
		case errors.Is(err, services.ErrInvalidToken),
			errors.Is(err, services.ErrTokenRevoked),
			errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrUserInactive):
			return response.Unauthorized(c, "Invalid refresh token")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	return response.Success(c, "Token refreshed", result)
}

// Logout handles logout of the current session
// @Summary Logout
// @Description Revoke the presented refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return response.BadRequest(c, "Refresh token is required")
	}

	if err := h.authService.Logout(c.Context(), req.RefreshToken); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	return response.Success(c, "Logged out successfully", nil)
}

// LogoutAll handles logout of every session
// @Summary Logout everywhere
// @Description Revoke all refresh tokens for the current user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.LogoutAll(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	return response.Success(c, "Logged out from all devices", nil)
}

// CheckUser returns the current authenticated user
// @Summary Current user
// @Description Return the profile of the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Security BearerAuth
// @Router /auth/check-user [get]
func (h *AuthHandler) CheckUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "User retrieved", user.ToResponse())
}

// mapAuthError converts auth service errors to HTTP responses. Returns
// nil when the error is not an auth domain error.
func mapAuthError(c *fiber.Ctx, err error) error {
	if vErr, ok := domain.AsValidation(err); ok {
		return response.BadRequest(c, vErr.Message)
	}
	if conflict, ok := domain.AsConflict(err); ok {
		return response.BadRequest(c, fmt.Sprintf("An account with this %s already exists", conflict.Field))
	}
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return response.BadRequest(c, "Invalid credentials")
	case errors.Is(err, services.ErrUserInactive):
		return response.Unauthorized(c, "Account is deactivated")
	}
	return nil
}
