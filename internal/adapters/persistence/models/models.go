package models

import (
	"time"

	"gorm.io/gorm"

	"jobdesk-api/internal/core/domain"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table. Accounts are never hard-deleted: the delete
// operation flips IsActive so the record stays queryable.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FullName   string    `gorm:"size:100;not null" json:"full_name"`
	Username   string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone      *string   `gorm:"uniqueIndex;size:20" json:"phone"`
	Password   string    `gorm:"size:255" json:"-"`
	Role       string    `gorm:"size:20;default:'user'" json:"role"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	AuthMethod string    `gorm:"size:20;default:'password'" json:"auth_method"`
	Picture    string    `gorm:"size:255" json:"picture,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == string(domain.RoleAdmin)
}

// UserResponse DTO. The password hash never leaves the persistence layer.
type UserResponse struct {
	ID         uint      `json:"id"`
	FullName   string    `json:"full_name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	AuthMethod string    `json:"auth_method"`
	Picture    string    `json:"picture,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Username:   u.Username,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		IsActive:   u.IsActive,
		AuthMethod: u.AuthMethod,
		Picture:    u.Picture,
		CreatedAt:  u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Job Tables
// ============================================================

// RequirementsConfig marks which application attachments are mandatory
// for a given posting.
type RequirementsConfig struct {
	CV          bool `gorm:"default:false" json:"cv"`
	CoverLetter bool `gorm:"default:false" json:"cover_letter"`
	Portfolio   bool `gorm:"default:false" json:"portfolio"`
	Github      bool `gorm:"default:false" json:"github"`
	LinkedIn    bool `gorm:"default:false" json:"linked_in"`
}

// Job represents job_postings table
type Job struct {
	ID                  uint               `gorm:"primaryKey" json:"id"`
	Title               string             `gorm:"size:200;not null" json:"title"`
	Description         string             `gorm:"type:text;not null" json:"description"`
	Company             string             `gorm:"size:100;not null" json:"company"`
	Location            string             `gorm:"size:100;not null" json:"location"`
	Salary              *float64           `gorm:"type:decimal(12,2)" json:"salary"`
	PostedBy            uint               `gorm:"not null;index" json:"posted_by"`
	Status              string             `gorm:"size:20;default:'Open'" json:"status"`
	ApplicationDeadline time.Time          `gorm:"not null" json:"application_deadline"`
	Requirements        RequirementsConfig `gorm:"embedded;embeddedPrefix:req_" json:"requirements_config"`
	CreatedAt           time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt     `gorm:"index" json:"-"`

	Poster *User `gorm:"foreignKey:PostedBy" json:"poster,omitempty"`
}

func (Job) TableName() string {
	return "job_postings"
}

// IsOpen reports whether the posting still accepts applications
func (j *Job) IsOpen() bool {
	return j.Status == string(domain.JobStatusOpen) && time.Now().Before(j.ApplicationDeadline)
}

// ============================================================
// Application Tables
// ============================================================

// JobApplication represents job_applications table. The composite unique
// index enforces at most one application per (user, job) pair, including
// under concurrent submissions.
type JobApplication struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;uniqueIndex:idx_applications_user_job" json:"user_id"`
	JobID           uint       `gorm:"not null;uniqueIndex:idx_applications_user_job" json:"job_id"`
	CV              string     `gorm:"size:255" json:"cv"`
	CoverLetter     string     `gorm:"type:text" json:"cover_letter"`
	PortfolioURL    string     `gorm:"size:255" json:"portfolio_url"`
	GithubURL       string     `gorm:"size:255" json:"github_url"`
	LinkedInProfile string     `gorm:"size:255" json:"linked_in_profile"`
	Status          string     `gorm:"size:20;default:'Pending'" json:"status"`
	ReviewedBy      *uint      `json:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User     *User `gorm:"foreignKey:UserID" json:"-"`
	Job      *Job  `gorm:"foreignKey:JobID" json:"-"`
	Reviewer *User `gorm:"foreignKey:ReviewedBy" json:"-"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}

// ApplicationResponse DTO with counterpart summary fields joined in
type ApplicationResponse struct {
	ID              uint       `json:"id"`
	UserID          uint       `json:"user_id"`
	JobID           uint       `json:"job_id"`
	CV              string     `json:"cv,omitempty"`
	CoverLetter     string     `json:"cover_letter,omitempty"`
	PortfolioURL    string     `json:"portfolio_url,omitempty"`
	GithubURL       string     `json:"github_url,omitempty"`
	LinkedInProfile string     `json:"linked_in_profile,omitempty"`
	Status          string     `json:"status"`
	ReviewedBy      *uint      `json:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	ApplicantName   string     `json:"applicant_name,omitempty"`
	ApplicantEmail  string     `json:"applicant_email,omitempty"`
	JobTitle        string     `json:"job_title,omitempty"`
	JobCompany      string     `json:"job_company,omitempty"`
}

func (a *JobApplication) ToResponse() *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		JobID:           a.JobID,
		CV:              a.CV,
		CoverLetter:     a.CoverLetter,
		PortfolioURL:    a.PortfolioURL,
		GithubURL:       a.GithubURL,
		LinkedInProfile: a.LinkedInProfile,
		Status:          a.Status,
		ReviewedBy:      a.ReviewedBy,
		ReviewedAt:      a.ReviewedAt,
		CreatedAt:       a.CreatedAt,
	}

	if a.User != nil {
		resp.ApplicantName = a.User.FullName
		resp.ApplicantEmail = a.User.Email
	}
	if a.Job != nil {
		resp.JobTitle = a.Job.Title
		resp.JobCompany = a.Job.Company
	}

	return resp
}

// ============================================================
// Contact & Subscription Tables
// ============================================================

// Contact represents contact_tickets table
type Contact struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"size:100;not null" json:"email"`
	Subject   string         `gorm:"size:200" json:"subject,omitempty"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Contact) TableName() string {
	return "contact_tickets"
}

// Subscription represents mailing-list subscriptions table
type Subscription struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"size:100;not null;uniqueIndex" json:"email"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Job{},
		&JobApplication{},
		&Contact{},
		&Subscription{},
	)
}
