package repositories

import (
	"context"

	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
)

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create creates a new job application. The composite unique index on
// (user_id, job_id) rejects a concurrent duplicate with a duplicated-key
// error, which the service maps to a conflict.
func (r *applicationRepository) Create(ctx context.Context, app *models.JobApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID gets an application by ID with applicant and job joined in
func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Job").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// List lists a page of applications with applicant and job joined in
func (r *applicationRepository) List(ctx context.Context, offset, limit int) ([]*models.JobApplication, int64, error) {
	return r.listWhere(r.db.WithContext(ctx).Model(&models.JobApplication{}), offset, limit)
}

// ListByJob lists a page of applications for a given job
func (r *applicationRepository) ListByJob(ctx context.Context, jobID uint, offset, limit int) ([]*models.JobApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.JobApplication{}).Where("job_id = ?", jobID)
	return r.listWhere(query, offset, limit)
}

// ListByUser lists a page of applications submitted by a given user
func (r *applicationRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.JobApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.JobApplication{}).Where("user_id = ?", userID)
	return r.listWhere(query, offset, limit)
}

// ListByStatus lists a page of applications in a given status
func (r *applicationRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.JobApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.JobApplication{}).Where("status = ?", status)
	return r.listWhere(query, offset, limit)
}

func (r *applicationRepository) listWhere(query *gorm.DB, offset, limit int) ([]*models.JobApplication, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []*models.JobApplication
	err := query.
		Preload("User").
		Preload("Job").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// Update updates an application
func (r *applicationRepository) Update(ctx context.Context, app *models.JobApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// ExistsByUserAndJob checks if the user already applied for the job
func (r *applicationRepository) ExistsByUserAndJob(ctx context.Context, userID, jobID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, err
}
