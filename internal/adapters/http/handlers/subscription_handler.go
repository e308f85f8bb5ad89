package handlers

import (
	"errors"

	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/core/services"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SubscriptionHandler handles mailing list endpoints
type SubscriptionHandler struct {
	subService *services.SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

// Subscribe adds an email address to the mailing list
// @Summary Subscribe to the mailing list
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param body body services.SubscribeInput true "Email address"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /subscriptions [post]
func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	var input services.SubscribeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sub, err := h.subService.Subscribe(c.Context(), &input)
	if err != nil {
		if vErr, ok := domain.AsValidation(err); ok {
			return response.BadRequest(c, vErr.Message)
		}
		if _, ok := domain.AsConflict(err); ok {
			return response.BadRequest(c, "This email is already subscribed")
		}
		return response.InternalServerError(c, "Failed to subscribe")
	}

	return response.Created(c, "Subscribed successfully", sub)
}

// List returns a page of subscriptions
// @Summary List subscriptions
// @Tags Subscriptions
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *SubscriptionHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	subs, meta, err := h.subService.ListSubscriptions(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list subscriptions")
	}

	return response.Success(c, "Subscriptions retrieved", pagination.NewResponse(subs, meta))
}

// Get returns a single subscription
// @Summary Get subscription
// @Tags Subscriptions
// @Produce json
// @Param id path int true "Subscription ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) Get(c *fiber.Ctx) error {
	subID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subscription ID")
	}

	sub, err := h.subService.GetSubscriptionByID(c.Context(), subID)
	if err != nil {
		if errors.Is(err, services.ErrSubscriptionNotFound) {
			return response.NotFound(c, "Subscription not found")
		}
		return response.InternalServerError(c, "Failed to get subscription")
	}

	return response.Success(c, "Subscription retrieved", sub)
}

// Unsubscribe removes a subscription
// @Summary Unsubscribe
// @Tags Subscriptions
// @Produce json
// @Param id path int true "Subscription ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /subscriptions/{id} [delete]
func (h *SubscriptionHandler) Unsubscribe(c *fiber.Ctx) error {
	subID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subscription ID")
	}

	if err := h.subService.Unsubscribe(c.Context(), subID); err != nil {
		if errors.Is(err, services.ErrSubscriptionNotFound) {
			return response.NotFound(c, "Subscription not found")
		}
		return response.InternalServerError(c, "Failed to unsubscribe")
	}

	return response.Success(c, "Unsubscribed successfully", nil)
}
