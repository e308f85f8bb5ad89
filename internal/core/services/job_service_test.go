package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobdesk-api/internal/adapters/persistence/models"
	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/core/domain"
	"jobdesk-api/internal/pkg/pagination"
	"jobdesk-api/internal/testutil"
)

func newJobService(t *testing.T) (*JobService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewJobService(repositories.NewJobRepository(db)), db
}

func createJobInput(title string) *CreateJobInput {
	return &CreateJobInput{
		Title:               title,
		Description:         "We are looking for a motivated engineer.",
		Company:             "Acme Corp",
		Location:            "Remote",
		ApplicationDeadline: time.Now().Add(30 * 24 * time.Hour),
	}
}

func TestCreateJob(t *testing.T) {
	svc, _ := newJobService(t)
	ctx := context.Background()

	input := createJobInput("Backend Engineer")
	input.Requirements = RequirementsInput{CV: true, Github: true}

	job, err := svc.CreateJob(ctx, 1, input)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, "Open", job.Status)
	assert.Equal(t, uint(1), job.PostedBy)
	assert.True(t, job.Requirements.CV)
	assert.True(t, job.Requirements.Github)
	assert.False(t, job.Requirements.Portfolio)
}

func TestCreateJobDeadlineMustBeFuture(t *testing.T) {
	svc, _ := newJobService(t)

	input := createJobInput("Stale Posting")
	input.ApplicationDeadline = time.Now().Add(-time.Hour)

	_, err := svc.CreateJob(context.Background(), 1, input)
	_, ok := domain.AsValidation(err)
	assert.True(t, ok, "expected a validation error, got %v", err)
}

func TestRequirementsSurviveRoundTrip(t *testing.T) {
	svc, _ := newJobService(t)
	ctx := context.Background()

	input := createJobInput("Full Stack Engineer")
	input.Requirements = RequirementsInput{CV: true, CoverLetter: true, LinkedIn: true}

	created, err := svc.CreateJob(ctx, 1, input)
	require.NoError(t, err)

	got, err := svc.GetJobByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequirementsConfig{CV: true, CoverLetter: true, LinkedIn: true}, got.Requirements)
}

func TestListJobsSearchAndPagination(t *testing.T) {
	svc, _ := newJobService(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := svc.CreateJob(ctx, 1, createJobInput(fmt.Sprintf("Engineer %02d", i)))
		require.NoError(t, err)
	}
	_, err := svc.CreateJob(ctx, 1, createJobInput("Designer"))
	require.NoError(t, err)

	jobs, meta, err := svc.ListJobs(ctx, &pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, jobs, 10)
	assert.Equal(t, int64(13), meta.Total)

	found, meta, err := svc.ListJobs(ctx, &pagination.Params{Page: 1, Limit: 10, Search: "Designer"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, int64(1), meta.Total)
}

func TestUpdateJobOwnership(t *testing.T) {
	svc, _ := newJobService(t)
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, 1, createJobInput("Owned Posting"))
	require.NoError(t, err)

	// A different non-admin caller is rejected
	_, err = svc.UpdateJob(ctx, job.ID, 2, "user", &UpdateJobInput{Title: "Hijacked"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// The owner may update
	updated, err := svc.UpdateJob(ctx, job.ID, 1, "user", &UpdateJobInput{Title: "Renamed Posting"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Posting", updated.Title)

	// Any admin may update
	updated, err = svc.UpdateJob(ctx, job.ID, 2, "admin", &UpdateJobInput{Location: "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, "Berlin", updated.Location)
}

func TestDeleteJob(t *testing.T) {
	svc, _ := newJobService(t)
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, 1, createJobInput("Ephemeral Posting"))
	require.NoError(t, err)

	err = svc.DeleteJob(ctx, job.ID, 2, "user")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.DeleteJob(ctx, job.ID, 1, "user"))

	_, err = svc.GetJobByID(ctx, job.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestCloseExpiredJobs(t *testing.T) {
	svc, db := newJobService(t)
	ctx := context.Background()

	fresh, err := svc.CreateJob(ctx, 1, createJobInput("Still Open"))
	require.NoError(t, err)

	expired, err := svc.CreateJob(ctx, 1, createJobInput("Past Deadline"))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Job{}).Where("id = ?", expired.ID).
		Update("application_deadline", time.Now().Add(-time.Hour)).Error)

	closed, err := svc.CloseExpiredJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	got, err := svc.GetJobByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, "Closed", got.Status)
	assert.False(t, got.IsOpen())

	got, err = svc.GetJobByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, "Open", got.Status)

	// Idempotent on a second run
	closed, err = svc.CloseExpiredJobs(ctx)
	require.NoError(t, err)
	assert.Zero(t, closed)
}
