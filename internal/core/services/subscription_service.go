package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/pkg/validation"
)

// ErrSubscriptionNotFound is returned when a subscription does not exist
var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionService handles newsletter subscription business logic
type SubscriptionService struct {
	subRepo repositories.SubscriptionRepository
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(subRepo repositories.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo}
}

// SubscribeInput represents subscription input
type SubscribeInput struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// Subscribe adds a subscriber to the mailing list. Subscribing twice
// with the same address is a conflict.
func (s *SubscriptionService) Subscribe(ctx context.Context, input *SubscribeInput) (*models.Subscription, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domain.NewValidation("%s", err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	sub := &models.Subscription{Name: strings.TrimSpace(input.Name), Email: email}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.NewConflict("email", email)
		}
		return nil, err
	}

	log.Printf("Subscription added: %s", email)
	return sub, nil
}

// ListSubscriptions returns a page of subscriptions
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, params *pagination.Params) ([]*models.Subscription, *pagination.Meta, error) {
	subs, total, err := s.subRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	meta := pagination.GetMeta(params, total)
	return subs, meta, nil
}

// GetSubscriptionByID returns a single subscription
func (s *SubscriptionService) GetSubscriptionByID(ctx context.Context, subID uint) (*models.Subscription, error) {
	sub, err := s.subRepo.GetByID(ctx, subID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

// Unsubscribe removes a subscription
func (s *SubscriptionService) Unsubscribe(ctx context.Context, subID uint) error {
	if err := s.subRepo.Delete(ctx, subID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}
