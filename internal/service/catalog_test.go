package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "mergington.dev/activities/internal/model/v1"
	"mergington.dev/activities/internal/pkg/testentry"
	"mergington.dev/activities/internal/service"
)

func TestListActivities(t *testing.T) {
	var catalog *service.Catalog
	testentry.Populate(t, &catalog)

	activities, err := catalog.ListActivities(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]*v1.Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}, activities)
}

func TestListActivitiesReflectsLatestState(t *testing.T) {
	var (
		catalog *service.Catalog
		roster  *service.Roster
	)
	testentry.Populate(t, &catalog, &roster)
	ctx := context.Background()

	_, err := catalog.ListActivities(ctx)
	require.NoError(t, err)

	_, err = roster.Unregister(ctx, "Gym Class", "john@mergington.edu")
	require.NoError(t, err)
	_, err = roster.Unregister(ctx, "Gym Class", "olivia@mergington.edu")
	require.NoError(t, err)

	activities, err := catalog.ListActivities(ctx)
	require.NoError(t, err)
	require.Contains(t, activities, "Gym Class")
	assert.NotNil(t, activities["Gym Class"].Participants)
	assert.Empty(t, activities["Gym Class"].Participants)
}

func TestSeedOnStartDisabled(t *testing.T) {
	conf := testentry.Config()
	conf.SeedOnStart = false

	var catalog *service.Catalog
	testentry.PopulateWith(t, conf, &catalog)
	ctx := context.Background()

	activities, err := catalog.ListActivities(ctx)
	require.NoError(t, err)
	assert.Empty(t, activities)

	require.NoError(t, catalog.Seed(ctx))
	require.NoError(t, catalog.Seed(ctx))

	activities, err = catalog.ListActivities(ctx)
	require.NoError(t, err)
	assert.Len(t, activities, 3)
	for name, activity := range activities {
		assert.Len(t, activity.Participants, 2, name)
	}
}

func TestSeedActivitiesIsACopy(t *testing.T) {
	first := service.SeedActivities()
	first[0].Name = "changed"
	first[0].Enrollments[0].Email = "changed"

	second := service.SeedActivities()
	assert.Equal(t, "Chess Club", second[0].Name)
	assert.Equal(t, "michael@mergington.edu", second[0].Enrollments[0].Email)
}
