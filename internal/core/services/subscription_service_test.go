package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/testutil"
)

func newSubscriptionService(t *testing.T) *SubscriptionService {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewSubscriptionService(repositories.NewSubscriptionRepository(db))
}

func TestSubscribe(t *testing.T) {
	svc := newSubscriptionService(t)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, &SubscribeInput{Name: "Reader", Email: "Reader@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Reader", sub.Name)
	assert.Equal(t, "reader@example.com", sub.Email)
}

func TestSubscribeDuplicate(t *testing.T) {
	svc := newSubscriptionService(t)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, &SubscribeInput{Name: "First", Email: "dupe@example.com"})
	require.NoError(t, err)

	// Case differences still collide after normalization
	_, err = svc.Subscribe(ctx, &SubscribeInput{Name: "Second", Email: "DUPE@example.com"})
	conflict, ok := domain.AsConflict(err)
	require.True(t, ok, "expected conflict, got %v", err)
	assert.Equal(t, "email", conflict.Field)
}

func TestSubscribeValidation(t *testing.T) {
	svc := newSubscriptionService(t)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, &SubscribeInput{Name: "Reader", Email: "nope"})
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)

	// Name is part of a subscription, not optional
	_, err = svc.Subscribe(ctx, &SubscribeInput{Email: "reader@example.com"})
	_, ok = domain.AsValidation(err)
	assert.True(t, ok)
}

func TestListAndUnsubscribe(t *testing.T) {
	svc := newSubscriptionService(t)
	ctx := context.Background()

	first, err := svc.Subscribe(ctx, &SubscribeInput{Name: "One", Email: "one@example.com"})
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, &SubscribeInput{Name: "Two", Email: "two@example.com"})
	require.NoError(t, err)

	subs, meta, err := svc.ListSubscriptions(ctx, &pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, subs, 2)
	assert.Equal(t, int64(2), meta.Total)

	require.NoError(t, svc.Unsubscribe(ctx, first.ID))

	err = svc.Unsubscribe(ctx, first.ID)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}
