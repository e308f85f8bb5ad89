package config

import (
	"log"

	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("Warning: admin seeder skipped: %v", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// seedAdminUser seeds a default admin user for development.
// In production, create the admin through a secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	phone := "+10000000000"
	admin := &models.User{
		FullName:   "Default Admin",
		Username:   "admin",
		Email:      "admin@jobdesk.local",
		Phone:      &phone,
		Password:   hashedPassword,
		Role:       string(domain.RoleAdmin),
		AuthMethod: string(domain.AuthMethodPassword),
		IsActive:   true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("Seeded default admin user (admin@jobdesk.local)")
	return nil
}
