package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/config"
	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/pkg/googleauth"
	"jobdesk-api/internal/testutil"
)

// fakeVerifier returns a canned Google profile or an error
type fakeVerifier struct {
	profile *googleauth.Profile
	err     error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*googleauth.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenHours: 1,
			RefreshTokenDays: 7,
		},
	}
}

func newAuthService(t *testing.T, verifier googleauth.Verifier) (*AuthService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	return NewAuthService(userRepo, tokenRepo, verifier, testConfig()), db
}

func registerInput(email, username, phone string) *RegisterInput {
	return &RegisterInput{
		FullName: "Test Person",
		Username: username,
		Email:    email,
		Phone:    phone,
		Password: "secret123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t, &fakeVerifier{})
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("alice@example.com", "alice", "+15550001111"))
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.Equal(t, "user", reg.User.Role)

	login, err := svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t, &fakeVerifier{})
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("bob@example.com", "bob", "+15550002222"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("bob@example.com", "bob2", "+15550003333"))
	conflict, ok := domain.AsConflict(err)
	require.True(t, ok, "expected a conflict error, got %v", err)
	assert.Equal(t, "email", conflict.Field)
}

func TestRegisterDuplicateUsernameAndPhone(t *testing.T) {
	svc, _ := newAuthService(t, &fakeVerifier{})
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("carol@example.com", "carol", "+15550004444"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("carol2@example.com", "carol", "+15550005555"))
	conflict, ok := domain.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, "username", conflict.Field)

	_, err = svc.Register(ctx, registerInput("carol3@example.com", "carol3", "+15550004444"))
	conflict, ok = domain.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, "phone", conflict.Field)
}

func TestRegisterEmailIsNormalized(t *testing.T) {
	svc, _ := newAuthService(t, &fakeVerifier{})
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("  Dave@Example.COM ", "dave", "+15550006666"))
	require.NoError(t, err)
	assert.Equal(t, "dave@example.com", reg.User.Email)
}

func TestLoginFailsUniformly(t *testing.T) {
	svc, _ := newAuthService(t, &fakeVerifier{})
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("erin@example.com", "erin", "+15550007777"))
	require.NoError(t, err)

	// Unknown email and wrong password produce the same error
	_, errUnknown := svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "secret123"})
	_, errWrong := svc.Login(ctx, &LoginInput{Email: "erin@example.com", Password: "wrong-pass"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, db := newAuthService(t, &fakeVerifier{})
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("frank@example.com", "frank", "+15550008888"))
	require.NoError(t, err)

	require.NoError(t, db.Table("users").Where("id = ?", reg.User.ID).Update("is_active", false).Error)

	_, err = svc.Login(ctx, &LoginInput{Email: "frank@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestGoogleSignInCreatesAccount(t *testing.T) {
	verifier := &fakeVerifier{profile: &googleauth.Profile{
		Email:         "grace@gmail.com",
		Name:          "Grace Hopper",
		Picture:       "https://example.com/grace.png",
		EmailVerified: true,
	}}
	svc, _ := newAuthService(t, verifier)
	ctx := context.Background()

	resp, err := svc.GoogleSignIn(ctx, "some-id-token")
	require.NoError(t, err)
	assert.Equal(t, "grace@gmail.com", resp.User.Email)
	assert.Equal(t, "grace", resp.User.Username)
	assert.Equal(t, "google", resp.User.AuthMethod)
	assert.NotEmpty(t, resp.AccessToken)

	// Second sign-in reuses the account
	again, err := svc.GoogleSignIn(ctx, "some-id-token")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, again.User.ID)
}

func TestGoogleSignInUpgradesPasswordAccount(t *testing.T) {
	verifier := &fakeVerifier{profile: &googleauth.Profile{
		Email:         "heidi@example.com",
		Name:          "Heidi",
		EmailVerified: true,
	}}
	svc, _ := newAuthService(t, verifier)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("heidi@example.com", "heidi", "+15550009999"))
	require.NoError(t, err)

	resp, err := svc.GoogleSignIn(ctx, "some-id-token")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.Equal(t, "multiple", resp.User.AuthMethod)

	// Password login still works after the upgrade
	_, err = svc.Login(ctx, &LoginInput{Email: "heidi@example.com", Password: "secret123"})
	assert.NoError(t, err)
}

func TestGoogleSignInRejectsBadToken(t *testing.T) {
	svc, _ := newAuthService(t, &fakeVerifier{err: googleauth.ErrInvalidIDToken})

	_, err := svc.GoogleSignIn(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _ := newAuthService(t, &fakeVerifier{})
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("ivan@example.com", "ivan", "+15551110000"))
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The spent token cannot be used again
	_, err = svc.RefreshToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newAuthService(t, &fakeVerifier{})
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("judy@example.com", "judy", "+15551112222"))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, reg.RefreshToken))

	_, err = svc.RefreshToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, _ := newAuthService(t, &fakeVerifier{})
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("kate@example.com", "kate", "+15551113333"))
	require.NoError(t, err)

	second, err := svc.Login(ctx, &LoginInput{Email: "kate@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, reg.User.ID))

	_, err = svc.RefreshToken(ctx, reg.RefreshToken)
	assert.Error(t, err)
	_, err = svc.RefreshToken(ctx, second.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t, &fakeVerifier{})

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService(t, &fakeVerifier{})

	input := registerInput("leo@example.com", "leo", "+15551114444")
	input.Password = "12345"

	_, err := svc.Register(context.Background(), input)
	_, ok := domain.AsValidation(err)
	assert.True(t, ok, "expected a validation error, got %v", err)
}
