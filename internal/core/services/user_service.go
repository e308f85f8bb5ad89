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

// User management errors
var (
	ErrCannotChangeOwnRole  = errors.New("cannot change your own role")
	ErrCannotDeactivateSelf = errors.New("cannot deactivate your own account")
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserInput represents profile update input. Zero-value fields are
// left unchanged.
type UpdateUserInput struct {
	FullName string `json:"full_name" validate:"omitempty,min=3,max=100"`
	Username string `json:"username" validate:"omitempty,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
	Picture  string `json:"picture" validate:"omitempty,url"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// ListUsers returns a page of users filtered by search text and role
func (s *UserService) ListUsers(ctx context.Context, params *pagination.Params) ([]*models.UserResponse, *pagination.Meta, error) {
	filter := repositories.UserFilter{
		Search: params.Search,
		Role:   params.Role,
	}

	users, total, err := s.userRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	meta := pagination.GetMeta(params, total)
	return responses, meta, nil
}

// GetUserByID returns a single user
func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateUser updates a user's profile. Only admins may change roles, and
// an admin may not change their own role.
func (s *UserService) UpdateUser(ctx context.Context, targetID, actorID uint, actorRole string, input *UpdateUserInput) (*models.UserResponse, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domain.NewValidation("%s", err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != "" {
		email := strings.ToLower(strings.TrimSpace(input.Email))
		if email != user.Email {
			if exists, _ := s.userRepo.ExistsByEmail(ctx, email); exists {
				return nil, domain.NewConflict("email", email)
			}
			user.Email = email
		}
	}

	if input.Username != "" && input.Username != user.Username {
		if exists, _ := s.userRepo.ExistsByUsername(ctx, input.Username); exists {
			return nil, domain.NewConflict("username", input.Username)
		}
		user.Username = input.Username
	}

	if input.Phone != "" {
		phone := strings.TrimSpace(input.Phone)
		if user.Phone == nil || *user.Phone != phone {
			if exists, _ := s.userRepo.ExistsByPhone(ctx, phone); exists {
				return nil, domain.NewConflict("phone", phone)
			}
			user.Phone = &phone
		}
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Picture != "" {
		user.Picture = input.Picture
	}

	if input.Role != "" && input.Role != user.Role {
		if actorRole != string(domain.RoleAdmin) {
			return nil, domain.ErrForbidden
		}
		if targetID == actorID {
			return nil, ErrCannotChangeOwnRole
		}
		user.Role = input.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.NewConflict("email", user.Email)
		}
		return nil, err
	}

	log.Printf("User updated: %d by %d", targetID, actorID)
	return user.ToResponse(), nil
}

// DeactivateUser soft-deletes a user by flipping the active flag off. An
// admin cannot deactivate themselves.
func (s *UserService) DeactivateUser(ctx context.Context, targetID, actorID uint) error {
	if targetID == actorID {
		return ErrCannotDeactivateSelf
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !user.IsActive {
		return nil
	}

	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("User deactivated: %d by %d", targetID, actorID)
	return nil
}

// ToggleActive flips a user's active flag and reports the new state
func (s *UserService) ToggleActive(ctx context.Context, targetID, actorID uint) (bool, error) {
	if targetID == actorID {
		return false, ErrCannotDeactivateSelf
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return false, err
	}

	log.Printf("User active=%t: %d by %d", user.IsActive, targetID, actorID)
	return user.IsActive, nil
}
