package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/config"
	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/pkg/googleauth"
	"jobdesk-api/internal/pkg/jwt"
	"jobdesk-api/internal/pkg/password"
	"jobdesk-api/internal/pkg/validation"
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUserInactive       = errors.New("user account is inactive")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	googleVerifier   googleauth.Verifier
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	googleVerifier googleauth.Verifier,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		googleVerifier:   googleVerifier,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	FullName string `json:"full_name" validate:"required,min=3,max=100"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"token"`
	RefreshToken string               `json:"refresh_token"`
}

// Register registers a new user with a password credential.
// Duplicate email, username or phone surfaces as a ConflictError naming
// the offending field.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domain.NewValidation("%s", err.Error())
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	input.Phone = strings.TrimSpace(input.Phone)

	if conflict := s.findConflict(ctx, input.Email, input.Username, input.Phone); conflict != nil {
		return nil, conflict
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = string(domain.RoleUser)
	}

	phone := input.Phone
	user := &models.User{
		FullName:   input.FullName,
		Username:   input.Username,
		Email:      input.Email,
		Phone:      &phone,
		Password:   hashedPassword,
		Role:       role,
		AuthMethod: string(domain.AuthMethodPassword),
		IsActive:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration may win the race between the uniqueness
		// pre-check and the insert; the unique index is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if conflict := s.findConflict(ctx, input.Email, input.Username, input.Phone); conflict != nil {
				return nil, conflict
			}
			return nil, domain.NewConflict("email", input.Email)
		}
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("User registered: %s", user.Username)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login authenticates a user by email and password. Unknown email and
// wrong password fail identically so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domain.NewValidation("%s", err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password == "" || !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("User logged in: %s", user.Username)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// GoogleSignIn verifies a Google ID token and signs the holder in,
// creating a local account on first sign-in. An existing password account
// is upgraded to the "multiple" auth method rather than overwritten.
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken string) (*AuthResponse, error) {
	if idToken == "" {
		return nil, domain.NewValidation("token_id is required")
	}

	profile, err := s.googleVerifier.Verify(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	email := strings.ToLower(profile.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !user.IsActive {
			return nil, ErrUserInactive
		}
		if user.AuthMethod == string(domain.AuthMethodPassword) {
			user.AuthMethod = string(domain.AuthMethodMultiple)
			if user.Picture == "" {
				user.Picture = profile.Picture
			}
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = s.createGoogleUser(ctx, email, profile)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("Google sign-in: %s", user.Username)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken rotates the refresh token and issues a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	tokenHash := password.HashToken(refreshToken)

	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// Token rotation: the presented refresh token is spent
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	return s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash)
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// findConflict reports which unique identity field is already taken, if any
func (s *AuthService) findConflict(ctx context.Context, email, username, phone string) error {
	if exists, _ := s.userRepo.ExistsByEmail(ctx, email); exists {
		return domain.NewConflict("email", email)
	}
	if exists, _ := s.userRepo.ExistsByUsername(ctx, username); exists {
		return domain.NewConflict("username", username)
	}
	if exists, _ := s.userRepo.ExistsByPhone(ctx, phone); exists {
		return domain.NewConflict("phone", phone)
	}
	return nil
}

// createGoogleUser creates a local account for a first Google sign-in.
// The generated username is the email local part; on collision a
// time-derived suffix disambiguates.
func (s *AuthService) createGoogleUser(ctx context.Context, email string, profile *googleauth.Profile) (*models.User, error) {
	username := email
	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}

	if exists, _ := s.userRepo.ExistsByUsername(ctx, username); exists {
		username = fmt.Sprintf("%s%d", username, time.Now().Unix())
	}

	fullName := profile.Name
	if fullName == "" {
		fullName = username
	}

	user := &models.User{
		FullName:   fullName,
		Username:   username,
		Email:      email,
		Picture:    profile.Picture,
		Role:       string(domain.RoleUser),
		AuthMethod: string(domain.AuthMethodGoogle),
		IsActive:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// issueTokens generates a token pair and stores the refresh token hash
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenHours,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	stored := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	if err := s.refreshTokenRepo.Create(ctx, stored); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
