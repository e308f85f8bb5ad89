package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/testutil"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewUserService(repositories.NewUserRepository(db)), db
}

var seedPhoneSeq int

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	seedPhoneSeq++
	phone := fmt.Sprintf("+1555%07d", seedPhoneSeq)
	user := &models.User{
		FullName:   "Seed " + username,
		Username:   username,
		Email:      username + "@example.com",
		Phone:      &phone,
		Password:   "ignored",
		Role:       role,
		IsActive:   true,
		AuthMethod: "password",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestListUsersPagination(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		seedUser(t, db, fmt.Sprintf("user%02d", i), "user")
	}

	users, meta, err := svc.ListUsers(ctx, &pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, users, 10)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	last, meta, err := svc.ListUsers(ctx, &pagination.Params{Page: 3, Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Len(t, last, 5)
	assert.Nil(t, meta.NextPage)
}

func TestListUsersSearchAndRoleFilter(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	seedUser(t, db, "alpha", "user")
	seedUser(t, db, "beta", "admin")
	seedUser(t, db, "gamma", "user")

	users, _, err := svc.ListUsers(ctx, &pagination.Params{Page: 1, Limit: 10, Search: "alph"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alpha", users[0].Username)

	admins, _, err := svc.ListUsers(ctx, &pagination.Params{Page: 1, Limit: 10, Role: "admin"})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "beta", admins[0].Username)
}

func TestUpdateUserProfile(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	user := seedUser(t, db, "mallory", "user")

	updated, err := svc.UpdateUser(ctx, user.ID, user.ID, "user", &UpdateUserInput{
		FullName: "Mallory Updated",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mallory Updated", updated.FullName)
	assert.Equal(t, "mallory", updated.Username)
}

func TestUpdateUserConflictingEmail(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	seedUser(t, db, "nina", "user")
	user := seedUser(t, db, "oscar", "user")

	_, err := svc.UpdateUser(ctx, user.ID, user.ID, "user", &UpdateUserInput{
		Email: "nina@example.com",
	})
	conflict, ok := domain.AsConflict(err)
	require.True(t, ok, "expected conflict, got %v", err)
	assert.Equal(t, "email", conflict.Field)
}

func TestUpdateUserRoleRules(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	admin := seedUser(t, db, "peggy", "admin")
	user := seedUser(t, db, "quinn", "user")

	// Non-admin cannot grant roles
	_, err := svc.UpdateUser(ctx, user.ID, user.ID, "user", &UpdateUserInput{Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Admin cannot change their own role
	_, err = svc.UpdateUser(ctx, admin.ID, admin.ID, "admin", &UpdateUserInput{Role: "user"})
	assert.ErrorIs(t, err, ErrCannotChangeOwnRole)

	// Admin can promote someone else
	updated, err := svc.UpdateUser(ctx, user.ID, admin.ID, "admin", &UpdateUserInput{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)
}

func TestDeactivateUser(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	admin := seedUser(t, db, "ruth", "admin")
	user := seedUser(t, db, "sybil", "user")

	require.NoError(t, svc.DeactivateUser(ctx, user.ID, admin.ID))

	got, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	// Deactivating twice is a no-op, not an error
	assert.NoError(t, svc.DeactivateUser(ctx, user.ID, admin.ID))
}

func TestDeactivateSelfForbidden(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	admin := seedUser(t, db, "trent", "admin")

	err := svc.DeactivateUser(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrCannotDeactivateSelf)

	_, err = svc.ToggleActive(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrCannotDeactivateSelf)
}

func TestToggleActive(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	admin := seedUser(t, db, "umber", "admin")
	user := seedUser(t, db, "vince", "user")

	active, err := svc.ToggleActive(ctx, user.ID, admin.ID)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = svc.ToggleActive(ctx, user.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestGetUserByIDNotFound(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.GetUserByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
