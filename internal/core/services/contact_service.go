package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/pkg/validation"
)

// ErrContactNotFound is returned when a contact ticket does not exist
var ErrContactNotFound = errors.New("contact ticket not found")

// ContactService handles contact ticket business logic
type ContactService struct {
	contactRepo repositories.ContactRepository
}

// NewContactService creates a new contact service
func NewContactService(contactRepo repositories.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// CreateContactInput represents contact ticket input
type CreateContactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// CreateContact files a new contact ticket
func (s *ContactService) CreateContact(ctx context.Context, input *CreateContactInput) (*models.Contact, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domain.NewValidation("%s", err.Error())
	}

	contact := &models.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	log.Printf("Contact ticket %d filed by %s", contact.ID, contact.Email)
	return contact, nil
}

// ListContacts returns a page of contact tickets
func (s *ContactService) ListContacts(ctx context.Context, params *pagination.Params) ([]*models.Contact, *pagination.Meta, error) {
	contacts, total, err := s.contactRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	meta := pagination.GetMeta(params, total)
	return contacts, meta, nil
}

// GetContactByID returns a single contact ticket
func (s *ContactService) GetContactByID(ctx context.Context, contactID uint) (*models.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

// DeleteContact removes a contact ticket
func (s *ContactService) DeleteContact(ctx context.Context, contactID uint) error {
	if err := s.contactRepo.Delete(ctx, contactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}
