package repositories

import (
	"context"

	"jobdesk-api/internal/adapters/persistence/models"
)

// UserFilter narrows user listing by free-text search and role
type UserFilter struct {
	Search string
	Role   string
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter UserFilter, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// JobRepository defines job posting repository interface
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	List(ctx context.Context, search string, offset, limit int) ([]*models.Job, int64, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id uint) error
	CloseExpired(ctx context.Context) (int64, error)
}

// ApplicationRepository defines job application repository interface
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.JobApplication) error
	GetByID(ctx context.Context, id uint) (*models.JobApplication, error)
	List(ctx context.Context, offset, limit int) ([]*models.JobApplication, int64, error)
	ListByJob(ctx context.Context, jobID uint, offset, limit int) ([]*models.JobApplication, int64, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.JobApplication, int64, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.JobApplication, int64, error)
	Update(ctx context.Context, app *models.JobApplication) error
	ExistsByUserAndJob(ctx context.Context, userID, jobID uint) (bool, error)
}

// ContactRepository defines contact ticket repository interface
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id uint) (*models.Contact, error)
	List(ctx context.Context, offset, limit int) ([]*models.Contact, int64, error)
	Delete(ctx context.Context, id uint) error
}

// SubscriptionRepository defines mailing-list subscription repository interface
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	GetByID(ctx context.Context, id uint) (*models.Subscription, error)
	List(ctx context.Context, offset, limit int) ([]*models.Subscription, int64, error)
	Delete(ctx context.Context, id uint) error
}
