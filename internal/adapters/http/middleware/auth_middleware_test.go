package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/config"
	"jobdesk-api/internal/pkg/jwt"
	"jobdesk-api/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "mw-access-secret",
			RefreshSecret:    "mw-refresh-secret",
			AccessTokenHours: 1,
			RefreshTokenDays: 7,
		},
	}
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := testConfig()

	app := fiber.New()
	app.Get("/protected", AuthMiddleware(cfg, repositories.NewUserRepository(db)), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID"), "role": c.Locals("role")})
	})
	app.Get("/admin", AuthMiddleware(cfg, repositories.NewUserRepository(db)), AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, db, cfg
}

func seedUser(t *testing.T, db *gorm.DB, username, role string, active bool) *models.User {
	t.Helper()
	user := &models.User{
		FullName:   "Test " + username,
		Username:   username,
		Email:      username + "@example.com",
		Password:   "ignored",
		Role:       role,
		IsActive:   active,
		AuthMethod: "password",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func request(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := request(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := request(t, app, "/protected", "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	app, db, _ := newTestApp(t)
	user := seedUser(t, db, "eve", "user", true)

	token, err := jwt.GenerateAccessToken(user.ID, user.Role, "some-other-secret", 1)
	require.NoError(t, err)

	resp := request(t, app, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := seedUser(t, db, "adam", "user", true)

	token, err := jwt.GenerateAccessToken(user.ID, user.Role, cfg.JWT.Secret, 1)
	require.NoError(t, err)

	resp := request(t, app, "/protected", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareDeactivatedAccount(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := seedUser(t, db, "brad", "user", true)

	token, err := jwt.GenerateAccessToken(user.ID, user.Role, cfg.JWT.Secret, 1)
	require.NoError(t, err)

	// Works while active
	resp := request(t, app, "/protected", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The same still-valid token is rejected once the account is off
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("is_active", false).Error)

	resp = request(t, app, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareDeletedAccount(t *testing.T) {
	app, _, cfg := newTestApp(t)

	token, err := jwt.GenerateAccessToken(9999, "user", cfg.JWT.Secret, 1)
	require.NoError(t, err)

	resp := request(t, app, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminOnly(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := seedUser(t, db, "carl", "user", true)
	admin := seedUser(t, db, "dora", "admin", true)

	userToken, err := jwt.GenerateAccessToken(user.ID, user.Role, cfg.JWT.Secret, 1)
	require.NoError(t, err)
	adminToken, err := jwt.GenerateAccessToken(admin.ID, admin.Role, cfg.JWT.Secret, 1)
	require.NoError(t, err)

	resp := request(t, app, "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = request(t, app, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoleComesFromDatabaseNotToken(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := seedUser(t, db, "finn", "user", true)

	// A token minted with an inflated role claim does not grant admin
	// access because the guard reads the role from the database
	forged, err := jwt.GenerateAccessToken(user.ID, "admin", cfg.JWT.Secret, 1)
	require.NoError(t, err)

	resp := request(t, app, "/admin", forged)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
