package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/core/services"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns a page of users
// @Summary List users
// @Description List users with pagination, text search and role filter
// @Tags Users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search in username, email and full name"
// @Param role query string false "Filter by role"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, meta, err := h.userService.ListUsers(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved", pagination.NewResponse(users, meta))
}

// Get returns a single user
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	targetID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	actorID := c.Locals("userID").(uint)
	actorRole := c.Locals("role").(string)
	if targetID != actorID && actorRole != string(domain.RoleAdmin) {
		return response.Forbidden(c, "You can only view your own profile")
	}

	user, err := h.userService.GetUserByID(c.Context(), targetID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved", user)
}

// Update updates a user's profile
// @Summary Update user
// @Description Update profile fields. Role changes are admin-only.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	targetID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	actorID := c.Locals("userID").(uint)
	actorRole := c.Locals("role").(string)
	if targetID != actorID && actorRole != string(domain.RoleAdmin) {
		return response.Forbidden(c, "You can only update your own profile")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateUser(c.Context(), targetID, actorID, actorRole, &input)
	if err != nil {
		if vErr, ok := domain.AsValidation(err); ok {
			return response.BadRequest(c, vErr.Message)
		}
		if conflict, ok := domain.AsConflict(err); ok {
			return response.BadRequest(c, fmt.Sprintf("An account with this %s already exists", conflict.Field))
		}
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrCannotChangeOwnRole):
			return response.BadRequest(c, "You cannot change your own role")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Only admins can change roles")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "User updated", user)
}

// Delete deactivates a user account
// @Summary Deactivate user
// @Description Soft-delete a user by deactivating the account
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	targetID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	actorID := c.Locals("userID").(uint)

	if err := h.userService.DeactivateUser(c.Context(), targetID, actorID); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrCannotDeactivateSelf):
			return response.BadRequest(c, "You cannot deactivate your own account")
		default:
			return response.InternalServerError(c, "Failed to deactivate user")
		}
	}

	return response.Success(c, "User deactivated", nil)
}

// ToggleActive flips a user's active flag
// @Summary Toggle user active state
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /users/activate/{id} [put]
func (h *UserHandler) ToggleActive(c *fiber.Ctx) error {
	targetID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	actorID := c.Locals("userID").(uint)

	active, err := h.userService.ToggleActive(c.Context(), targetID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrCannotDeactivateSelf):
			return response.BadRequest(c, "You cannot deactivate your own account")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	message := "User deactivated"
	if active {
		message = "User activated"
	}
	return response.Success(c, message, fiber.Map{"is_active": active})
}

// parseIDParam parses the :id route parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return uint(id), nil
}
