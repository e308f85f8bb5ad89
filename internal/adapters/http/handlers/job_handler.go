package handlers

import (
	"errors"

	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/core/services"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// JobHandler handles job posting endpoints
type JobHandler struct {
	jobService *services.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// Create creates a job posting
// @Summary Create job
// @Description Create a new job posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Param body body services.CreateJobInput true "Job data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var input services.CreateJobInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actorID := c.Locals("userID").(uint)

	job, err := h.jobService.CreateJob(c.Context(), actorID, &input)
	if err != nil {
		if vErr, ok := domain.AsValidation(err); ok {
			return response.BadRequest(c, vErr.Message)
		}
		return response.InternalServerError(c, "Failed to create job")
	}

	return response.Created(c, "Job created", job)
}

// List returns a page of job postings
// @Summary List jobs
// @Tags Jobs
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search in title, company and location"
// @Success 200 {object} response.Response
// @Router /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	jobs, meta, err := h.jobService.ListJobs(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list jobs")
	}

	return response.Success(c, "Jobs retrieved", pagination.NewResponse(jobs, meta))
}

// Get returns a single job posting
// @Summary Get job
// @Tags Jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	job, err := h.jobService.GetJobByID(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to get job")
	}

	return response.Success(c, "Job retrieved", job)
}

// Update updates a job posting
// @Summary Update job
// @Description Update a job posting owned by the caller
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param body body services.UpdateJobInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	var input services.UpdateJobInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actorID := c.Locals("userID").(uint)
	actorRole := c.Locals("role").(string)

	job, err := h.jobService.UpdateJob(c.Context(), jobID, actorID, actorRole, &input)
	if err != nil {
		if vErr, ok := domain.AsValidation(err); ok {
			return response.BadRequest(c, vErr.Message)
		}
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return response.NotFound(c, "Job not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only update your own job postings")
		default:
			return response.InternalServerError(c, "Failed to update job")
		}
	}

	return response.Success(c, "Job updated", job)
}

// Delete removes a job posting
// @Summary Delete job
// @Tags Jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	actorID := c.Locals("userID").(uint)
	actorRole := c.Locals("role").(string)

	if err := h.jobService.DeleteJob(c.Context(), jobID, actorID, actorRole); err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return response.NotFound(c, "Job not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only delete your own job postings")
		default:
			return response.InternalServerError(c, "Failed to delete job")
		}
	}

	return response.Success(c, "Job deleted", nil)
}
