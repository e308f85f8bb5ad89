package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/pkg/validation"
)

// Job errors
var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobClosed   = errors.New("job is no longer accepting applications")
)

// JobService handles job posting business logic
type JobService struct {
	jobRepo repositories.JobRepository
}

// NewJobService creates a new job service
func NewJobService(jobRepo repositories.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// RequirementsInput mirrors the per-job attachment requirement toggles
type RequirementsInput struct {
	CV          bool `json:"cv"`
	CoverLetter bool `json:"cover_letter"`
	Portfolio   bool `json:"portfolio"`
	Github      bool `json:"github"`
	LinkedIn    bool `json:"linkedin"`
}

// CreateJobInput represents job creation input
type CreateJobInput struct {
	Title               string            `json:"title" validate:"required,min=3,max=200"`
	Description         string            `json:"description" validate:"required,min=10"`
	Company             string            `json:"company" validate:"required,min=2,max=100"`
	Location            string            `json:"location" validate:"required,min=2,max=100"`
	Salary              *float64          `json:"salary" validate:"omitempty,gt=0"`
	ApplicationDeadline time.Time         `json:"application_deadline" validate:"required"`
	Requirements        RequirementsInput `json:"requirements"`
}

// UpdateJobInput represents job update input. Zero-value fields are left
// unchanged; Requirements and Status replace only when supplied.
type UpdateJobInput struct {
	Title               string             `json:"title" validate:"omitempty,min=3,max=200"`
	Description         string             `json:"description" validate:"omitempty,min=10"`
	Company             string             `json:"company" validate:"omitempty,min=2,max=100"`
	Location            string             `json:"location" validate:"omitempty,min=2,max=100"`
	Salary              *float64           `json:"salary" validate:"omitempty,gt=0"`
	Status              string             `json:"status" validate:"omitempty,oneof=Open Closed"`
	ApplicationDeadline *time.Time         `json:"application_deadline"`
	Requirements        *RequirementsInput `json:"requirements"`
}

// CreateJob creates a job posting owned by the calling admin
func (s *JobService) CreateJob(ctx context.Context, postedBy uint, input *CreateJobInput) (*models.Job, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domain.NewValidation("%s", err.Error())
	}

	if !input.ApplicationDeadline.After(time.Now()) {
		return nil, domain.NewValidation("application_deadline must be in the future")
	}

	job := &models.Job{
		Title:               input.Title,
		Description:         input.Description,
		Company:             input.Company,
		Location:            input.Location,
		Salary:              input.Salary,
		PostedBy:            postedBy,
		Status:              string(domain.JobStatusOpen),
		ApplicationDeadline: input.ApplicationDeadline,
		Requirements: models.RequirementsConfig{
			CV:          input.Requirements.CV,
			CoverLetter: input.Requirements.CoverLetter,
			Portfolio:   input.Requirements.Portfolio,
			Github:      input.Requirements.Github,
			LinkedIn:    input.Requirements.LinkedIn,
		},
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	log.Printf("Job created: %d %q by %d", job.ID, job.Title, postedBy)
	return job, nil
}

// ListJobs returns a page of job postings
func (s *JobService) ListJobs(ctx context.Context, params *pagination.Params) ([]*models.Job, *pagination.Meta, error) {
	jobs, total, err := s.jobRepo.List(ctx, params.Search, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	meta := pagination.GetMeta(params, total)
	return jobs, meta, nil
}

// GetJobByID returns a single job posting
func (s *JobService) GetJobByID(ctx context.Context, jobID uint) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// UpdateJob updates a job posting. Only the posting admin or another
// admin acting on their behalf may update; the ownership rule is that the
// caller must own the job or hold the admin role.
func (s *JobService) UpdateJob(ctx context.Context, jobID, actorID uint, actorRole string, input *UpdateJobInput) (*models.Job, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domain.NewValidation("%s", err.Error())
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if job.PostedBy != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	if input.Title != "" {
		job.Title = input.Title
	}
	if input.Description != "" {
		job.Description = input.Description
	}
	if input.Company != "" {
		job.Company = input.Company
	}
	if input.Location != "" {
		job.Location = input.Location
	}
	if input.Salary != nil {
		job.Salary = input.Salary
	}
	if input.Status != "" {
		job.Status = input.Status
	}
	if input.ApplicationDeadline != nil {
		job.ApplicationDeadline = *input.ApplicationDeadline
	}
	if input.Requirements != nil {
		job.Requirements = models.RequirementsConfig{
			CV:          input.Requirements.CV,
			CoverLetter: input.Requirements.CoverLetter,
			Portfolio:   input.Requirements.Portfolio,
			Github:      input.Requirements.Github,
			LinkedIn:    input.Requirements.LinkedIn,
		}
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	log.Printf("Job updated: %d by %d", jobID, actorID)
	return job, nil
}

// DeleteJob soft-deletes a job posting under the same ownership rule as
// UpdateJob
func (s *JobService) DeleteJob(ctx context.Context, jobID, actorID uint, actorRole string) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	if job.PostedBy != actorID && actorRole != string(domain.RoleAdmin) {
		return domain.ErrForbidden
	}

	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return err
	}

	log.Printf("Job deleted: %d by %d", jobID, actorID)
	return nil
}

// CloseExpiredJobs closes every open job whose deadline has passed and
// reports how many postings were affected
func (s *JobService) CloseExpiredJobs(ctx context.Context) (int64, error) {
	closed, err := s.jobRepo.CloseExpired(ctx)
	if err != nil {
		return 0, err
	}
	if closed > 0 {
		log.Printf("Closed %d expired job postings", closed)
	}
	return closed, nil
}
