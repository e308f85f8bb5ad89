package handlers

import (
	"jobdesk-api/internal/core/services"
	"jobdesk-api/internal/pkg/response"
	"jobdesk-api/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// EmailHandler handles outbound email endpoints
type EmailHandler struct {
	mailer services.Mailer
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(mailer services.Mailer) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

// SendEmailRequest represents an outbound email request body
type SendEmailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=1,max=200"`
	Text    string `json:"text" validate:"required,min=1"`
	HTML    string `json:"html" validate:"omitempty"`
}

// Send sends a single email
// @Summary Send email
// @Description Send an email to a single recipient
// @Tags Email
// @Accept json
// @Produce json
// @Param body body SendEmailRequest true "Email content"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /email/send [post]
func (h *EmailHandler) Send(c *fiber.Ctx) error {
	var req SendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.mailer.Send(req.To, req.Subject, req.Text, req.HTML); err != nil {
		return response.InternalServerError(c, "Failed to send email")
	}

	return response.Success(c, "Email sent", nil)
}
