package handlers

import (
	"errors"

	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/core/services"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles contact ticket endpoints
type ContactHandler struct {
	contactService *services.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Create files a new contact ticket
// @Summary Submit contact message
// @Tags Contacts
// @Accept json
// @Produce json
// @Param body body services.CreateContactInput true "Contact message"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var input services.CreateContactInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	contact, err := h.contactService.CreateContact(c.Context(), &input)
	if err != nil {
		if vErr, ok := domain.AsValidation(err); ok {
			return response.BadRequest(c, vErr.Message)
		}
		return response.InternalServerError(c, "Failed to submit message")
	}

	return response.Created(c, "Message submitted", contact)
}

// List returns a page of contact tickets
// @Summary List contact messages
// @Tags Contacts
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	contacts, meta, err := h.contactService.ListContacts(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list messages")
	}

	return response.Success(c, "Messages retrieved", pagination.NewResponse(contacts, meta))
}

// Get returns a single contact ticket
// @Summary Get contact message
// @Tags Contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	contactID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid contact ID")
	}

	contact, err := h.contactService.GetContactByID(c.Context(), contactID)
	if err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "Failed to get message")
	}

	return response.Success(c, "Message retrieved", contact)
}

// Delete removes a contact ticket
// @Summary Delete contact message
// @Tags Contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	contactID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid contact ID")
	}

	if err := h.contactService.DeleteContact(c.Context(), contactID); err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "Failed to delete message")
	}

	return response.Success(c, "Message deleted", nil)
}
