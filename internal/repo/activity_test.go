package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/pkg/testentry"
	"mergington.dev/activities/internal/repo"
	"mergington.dev/activities/internal/service"
)

func TestSeededCatalog(t *testing.T) {
	var activityRepo *repo.Activity
	testentry.Populate(t, &activityRepo)

	activities, err := activityRepo.GetActivitiesWithRoster(context.Background())
	require.NoError(t, err)
	require.Len(t, activities, 3)

	want := service.SeedActivities()
	for i, activity := range activities {
		assert.Equal(t, want[i].Name, activity.Name)
		assert.Equal(t, want[i].Description, activity.Description)
		assert.Equal(t, want[i].Schedule, activity.Schedule)
		assert.Equal(t, want[i].MaxParticipants, activity.MaxParticipants)
		assert.Equal(t, want[i].Participants(), activity.Participants())
	}
}

func TestInitializationIsIdempotent(t *testing.T) {
	var activityRepo *repo.Activity
	testentry.Populate(t, &activityRepo)
	ctx := context.Background()

	require.NoError(t, activityRepo.Migrate(ctx))

	seeded, err := activityRepo.SeedIfEmpty(ctx, service.SeedActivities())
	require.NoError(t, err)
	assert.False(t, seeded)

	activities, err := activityRepo.GetActivitiesWithRoster(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 3)
	for _, activity := range activities {
		assert.Len(t, activity.Enrollments, 2, activity.Name)
	}
}

func TestSeedIfEmptyOnEmptyStore(t *testing.T) {
	conf := testentry.Config()
	conf.SeedOnStart = false

	var activityRepo *repo.Activity
	testentry.PopulateWith(t, conf, &activityRepo)
	ctx := context.Background()

	activities, err := activityRepo.GetActivitiesWithRoster(ctx)
	require.NoError(t, err)
	assert.Empty(t, activities)

	seeded, err := activityRepo.SeedIfEmpty(ctx, []*model.Activity{
		{Name: "Art Club", Description: "Painting", Schedule: "Thursdays", MaxParticipants: 15},
	})
	require.NoError(t, err)
	assert.True(t, seeded)

	art, err := activityRepo.GetActivityByName(ctx, "Art Club")
	require.NoError(t, err)
	assert.Equal(t, 15, art.MaxParticipants)
	assert.Empty(t, art.Participants())
}

func TestGetActivityByName(t *testing.T) {
	var activityRepo *repo.Activity
	testentry.Populate(t, &activityRepo)
	ctx := context.Background()

	chess, err := activityRepo.GetActivityByName(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants())

	_, err = activityRepo.GetActivityByName(ctx, "chess club")
	assert.ErrorIs(t, err, model.ErrActivityNotFound)
}

func TestDeletingActivityCascadesRoster(t *testing.T) {
	var (
		activityRepo *repo.Activity
		db           *bun.DB
	)
	testentry.Populate(t, &activityRepo, &db)
	ctx := context.Background()

	chess, err := activityRepo.GetActivityByName(ctx, "Chess Club")
	require.NoError(t, err)

	_, err = db.NewDelete().Model(chess).WherePK().Exec(ctx)
	require.NoError(t, err)

	count, err := db.NewSelect().
		Model((*model.Enrollment)(nil)).
		Where("activity_id = ?", chess.ActivityID).
		Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
