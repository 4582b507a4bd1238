package service_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"mergington.dev/activities/internal/pkg/testentry"
	"mergington.dev/activities/internal/service"
)

func TestHealthCheck(t *testing.T) {
	var (
		health *service.Health
		db     *bun.DB
	)
	testentry.Populate(t, &health, &db)

	report, err := health.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &service.HealthReport{Database: service.StoreOK, Redis: service.StoreDisabled}, report)
	assert.True(t, report.Healthy())

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := service.NewHealth(db, nil).Check(ctx)
		assert.ErrorIs(t, err, service.ErrDatabaseNotReachable)
		assert.Equal(t, service.StoreUnreachable, report.Database)
		assert.False(t, report.Healthy())
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		report, err := service.NewHealth(db, client).Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, service.StoreOK, report.Redis)

		mr.Close()
		report, err = service.NewHealth(db, client).Check(context.Background())
		assert.ErrorIs(t, err, service.ErrRedisNotReachable)
		assert.Equal(t, service.StoreOK, report.Database)
		assert.Equal(t, service.StoreUnreachable, report.Redis)
		assert.False(t, report.Healthy())
	})
}
