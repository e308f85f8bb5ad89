package handlers

import (
	"errors"
	"strconv"

	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/core/services"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles job application endpoints
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// Apply submits a job application
// @Summary Apply to a job
// @Description Submit an application to an open job posting
// @Tags Applications
// @Accept json
// @Produce json
// @Param jobId path int true "Job ID"
// @Param body body services.ApplyInput true "Application attachments"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /applications/{jobId} [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	jobID, err := strconv.ParseUint(c.Params("jobId"), 10, 32)
	if err != nil || jobID == 0 {
		return response.BadRequest(c, "Invalid job ID")
	}

	var input services.ApplyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	input.JobID = uint(jobID)

	userID := c.Locals("userID").(uint)

	app, err := h.appService.Apply(c.Context(), userID, &input)
	if err != nil {
		if vErr, ok := domain.AsValidation(err); ok {
			return response.BadRequest(c, vErr.Message)
		}
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return response.NotFound(c, "Job not found")
		case errors.Is(err, services.ErrJobClosed):
			return response.BadRequest(c, "This job is no longer accepting applications")
		case errors.Is(err, services.ErrAlreadyApplied):
			return response.BadRequest(c, "You have already applied to this job")
		default:
			return response.InternalServerError(c, "Failed to submit application")
		}
	}

	return response.Created(c, "Application submitted", app)
}

// List returns a page of all applications
// @Summary List applications
// @Tags Applications
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	apps, meta, err := h.appService.ListApplications(c.Context(), params, "")
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved", pagination.NewResponse(apps, meta))
}

// Get returns a single application
// @Summary Get application
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	appID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	actorID := c.Locals("userID").(uint)
	actorRole := c.Locals("role").(string)

	app, err := h.appService.GetApplicationByID(c.Context(), appID, actorID, actorRole)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			return response.NotFound(c, "Application not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only view your own applications")
		default:
			return response.InternalServerError(c, "Failed to get application")
		}
	}

	return response.Success(c, "Application retrieved", app)
}

// ListByJob returns a page of applications for one job
// @Summary List applications for a job
// @Tags Applications
// @Produce json
// @Param id path int true "Job ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /applications/by-job/{id} [get]
func (h *ApplicationHandler) ListByJob(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	params := pagination.GetParams(c)

	apps, meta, err := h.appService.ListApplicationsByJob(c.Context(), jobID, params)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved", pagination.NewResponse(apps, meta))
}

// ListByUser returns a page of one user's applications. Non-admins may
// only list their own.
// @Summary List applications by applicant
// @Tags Applications
// @Produce json
// @Param id path int true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Security BearerAuth
// @Router /applications/by-user/{id} [get]
func (h *ApplicationHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	actorID := c.Locals("userID").(uint)
	actorRole := c.Locals("role").(string)
	if userID != actorID && actorRole != string(domain.RoleAdmin) {
		return response.Forbidden(c, "You can only view your own applications")
	}

	params := pagination.GetParams(c)

	apps, meta, err := h.appService.ListApplicationsByUser(c.Context(), userID, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved", pagination.NewResponse(apps, meta))
}

// ListByStatus returns a page of applications in a given status
// @Summary List applications by status
// @Tags Applications
// @Produce json
// @Param status path string true "Application status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /applications/by-status/{status} [get]
func (h *ApplicationHandler) ListByStatus(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Params("status")

	apps, meta, err := h.appService.ListApplications(c.Context(), params, status)
	if err != nil {
		if vErr, ok := domain.AsValidation(err); ok {
			return response.BadRequest(c, vErr.Message)
		}
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved", pagination.NewResponse(apps, meta))
}

// UpdateStatus moves an application through the review workflow
// @Summary Update application status
// @Description Advance an application along the review workflow
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param body body services.UpdateStatusInput true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /applications/{id} [put]
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	appID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var input services.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reviewerID := c.Locals("userID").(uint)

	app, err := h.appService.UpdateStatus(c.Context(), appID, reviewerID, &input)
	if err != nil {
		if vErr, ok := domain.AsValidation(err); ok {
			return response.BadRequest(c, vErr.Message)
		}
		if errors.Is(err, services.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to update application")
	}

	return response.Success(c, "Application status updated", app)
}
