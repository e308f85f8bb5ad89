package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/pkg/validation"
)

// Application errors
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("you have already applied to this job")
)

// ApplicationService handles job application business logic
type ApplicationService struct {
	appRepo repositories.ApplicationRepository
	jobRepo repositories.JobRepository
	mailer  Mailer
}

// NewApplicationService creates a new application service. The mailer may
// be nil; status notifications are then skipped.
func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	mailer Mailer,
) *ApplicationService {
	return &ApplicationService{
		appRepo: appRepo,
		jobRepo: jobRepo,
		mailer:  mailer,
	}
}

// ApplyInput represents job application input
type ApplyInput struct {
	JobID           uint   `json:"job_id" validate:"required"`
	CV              string `json:"cv" validate:"omitempty,url"`
	CoverLetter     string `json:"cover_letter" validate:"omitempty,max=5000"`
	PortfolioURL    string `json:"portfolio_url" validate:"omitempty,url"`
	GithubURL       string `json:"github_url" validate:"omitempty,url"`
	LinkedInProfile string `json:"linkedin_profile" validate:"omitempty,url"`
}

// UpdateStatusInput represents application status update input
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// Apply submits an application to an open job. The job's requirement
// toggles decide which attachments are mandatory, and a user may hold at
// most one application per job.
func (s *ApplicationService) Apply(ctx context.Context, userID uint, input *ApplyInput) (*models.ApplicationResponse, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domain.NewValidation("%s", err.Error())
	}

	job, err := s.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if !job.IsOpen() {
		return nil, ErrJobClosed
	}

	if err := checkRequirements(&job.Requirements, input); err != nil {
		return nil, err
	}

	if exists, err := s.appRepo.ExistsByUserAndJob(ctx, userID, input.JobID); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrAlreadyApplied
	}

	app := &models.JobApplication{
		UserID:          userID,
		JobID:           input.JobID,
		CV:              input.CV,
		CoverLetter:     input.CoverLetter,
		PortfolioURL:    input.PortfolioURL,
		GithubURL:       input.GithubURL,
		LinkedInProfile: input.LinkedInProfile,
		Status:          string(domain.ApplicationPending),
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		// The composite unique index settles the concurrent double-apply race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	created, err := s.appRepo.GetByID(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("Application %d submitted: user %d job %d", app.ID, userID, input.JobID)
	return created.ToResponse(), nil
}

// GetApplicationByID returns a single application. Non-admins may only
// read their own.
func (s *ApplicationService) GetApplicationByID(ctx context.Context, appID, actorID uint, actorRole string) (*models.ApplicationResponse, error) {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if app.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	return app.ToResponse(), nil
}

// ListApplications returns a page of all applications, optionally
// filtered by status
func (s *ApplicationService) ListApplications(ctx context.Context, params *pagination.Params, status string) ([]*models.ApplicationResponse, *pagination.Meta, error) {
	var (
		apps  []*models.JobApplication
		total int64
		err   error
	)

	if status != "" {
		if !domain.ApplicationStatus(status).Valid() {
			return nil, nil, domain.NewValidation("invalid status %q", status)
		}
		apps, total, err = s.appRepo.ListByStatus(ctx, status, params.Offset, params.Limit)
	} else {
		apps, total, err = s.appRepo.List(ctx, params.Offset, params.Limit)
	}
	if err != nil {
		return nil, nil, err
	}

	meta := pagination.GetMeta(params, total)
	return toResponses(apps), meta, nil
}

// ListApplicationsByJob returns a page of applications for one job
func (s *ApplicationService) ListApplicationsByJob(ctx context.Context, jobID uint, params *pagination.Params) ([]*models.ApplicationResponse, *pagination.Meta, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrJobNotFound
		}
		return nil, nil, err
	}

	apps, total, err := s.appRepo.ListByJob(ctx, jobID, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	meta := pagination.GetMeta(params, total)
	return toResponses(apps), meta, nil
}

// ListApplicationsByUser returns a page of one user's applications
func (s *ApplicationService) ListApplicationsByUser(ctx context.Context, userID uint, params *pagination.Params) ([]*models.ApplicationResponse, *pagination.Meta, error) {
	apps, total, err := s.appRepo.ListByUser(ctx, userID, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	meta := pagination.GetMeta(params, total)
	return toResponses(apps), meta, nil
}

// UpdateStatus moves an application along the review workflow. Only
// forward transitions are allowed and the reviewing admin is recorded.
// The applicant is notified by email on a best-effort basis.
func (s *ApplicationService) UpdateStatus(ctx context.Context, appID, reviewerID uint, input *UpdateStatusInput) (*models.ApplicationResponse, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domain.NewValidation("%s", err.Error())
	}

	next := domain.ApplicationStatus(input.Status)
	if !next.Valid() {
		return nil, domain.NewValidation("invalid status %q", input.Status)
	}

	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	current := domain.ApplicationStatus(app.Status)
	if !current.CanTransitionTo(next) {
		return nil, domain.NewValidation("cannot change status from %s to %s", current, next)
	}

	now := time.Now()
	app.Status = string(next)
	app.ReviewedBy = &reviewerID
	app.ReviewedAt = &now

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	s.notifyStatusChange(app, next)

	log.Printf("Application %d status: %s -> %s by %d", appID, current, next, reviewerID)
	return app.ToResponse(), nil
}

// notifyStatusChange emails the applicant about the new status. Failures
// are logged and never fail the status update itself.
func (s *ApplicationService) notifyStatusChange(app *models.JobApplication, status domain.ApplicationStatus) {
	if s.mailer == nil || app.User == nil || app.Job == nil || app.User.Email == "" {
		return
	}

	subject := fmt.Sprintf("Your application for %s has been updated", app.Job.Title)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour application for %s at %s is now %s.\n\nThank you for using JobDesk.",
		app.User.FullName, app.Job.Title, app.Job.Company, status,
	)

	if err := s.mailer.Send(app.User.Email, subject, body, ""); err != nil {
		log.Printf("Failed to send status notification for application %d: %v", app.ID, err)
	}
}

// checkRequirements enforces the job's mandatory attachment toggles
func checkRequirements(req *models.RequirementsConfig, input *ApplyInput) error {
	if req.CV && input.CV == "" {
		return domain.NewValidation("cv is required for this job")
	}
	if req.CoverLetter && input.CoverLetter == "" {
		return domain.NewValidation("cover_letter is required for this job")
	}
	if req.Portfolio && input.PortfolioURL == "" {
		return domain.NewValidation("portfolio_url is required for this job")
	}
	if req.Github && input.GithubURL == "" {
		return domain.NewValidation("github_url is required for this job")
	}
	if req.LinkedIn && input.LinkedInProfile == "" {
		return domain.NewValidation("linkedin_profile is required for this job")
	}
	return nil
}

func toResponses(apps []*models.JobApplication) []*models.ApplicationResponse {
	responses := make([]*models.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		responses = append(responses, a.ToResponse())
	}
	return responses
}
