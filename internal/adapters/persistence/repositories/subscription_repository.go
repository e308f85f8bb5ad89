package repositories

import (
	"context"

	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
)

// subscriptionRepository implements SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create creates a new subscription
func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// GetByID gets a subscription by ID
func (r *subscriptionRepository) GetByID(ctx context.Context, id uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// List lists a page of subscriptions, newest first
func (r *subscriptionRepository) List(ctx context.Context, offset, limit int) ([]*models.Subscription, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Subscription{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []*models.Subscription
	err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// Delete deletes a subscription
func (r *subscriptionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Subscription{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
