package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
	"jobdesk-api/internal/core/domain"
)

// jobRepository implements JobRepository interface
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create creates a new job posting
func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID gets a job posting by ID
func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// List lists a page of job postings, newest first, optionally filtered
// by free-text search over title, company and location
func (r *jobRepository) List(ctx context.Context, search string, offset, limit int) ([]*models.Job, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR company LIKE ? OR location LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []*models.Job
	err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// Update updates a job posting
func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// Delete soft deletes a job posting
func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Job{}, id).Error
}

// CloseExpired marks Open postings past their application deadline as Closed
// and returns the number of postings moved.
func (r *jobRepository) CloseExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("status = ? AND application_deadline < ?", string(domain.JobStatusOpen), time.Now()).
		Update("status", string(domain.JobStatusClosed))
	return result.RowsAffected, result.Error
}
