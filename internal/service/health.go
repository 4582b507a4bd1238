package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

var (
	ErrDatabaseNotReachable = errors.New("database not reachable")
	ErrRedisNotReachable    = errors.New("redis not reachable")
)

const (
	StoreOK          = "ok"
	StoreDisabled    = "disabled"
	StoreUnreachable = "unreachable"
)

// HealthReport is the state of each backing store.
type HealthReport struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func (r *HealthReport) Healthy() bool {
	return r.Database == StoreOK && r.Redis != StoreUnreachable
}

type Health struct {
	DB    *bun.DB
	Redis *redis.Client
}

func NewHealth(db *bun.DB, redis *redis.Client) *Health {
	return &Health{
		DB:    db,
		Redis: redis,
	}
}

// Check pings every configured backing store concurrently. The report is always filled in;
// the error is the first store failure.
func (s *Health) Check(ctx context.Context) (*HealthReport, error) {
	report := &HealthReport{
		Database: StoreOK,
		Redis:    StoreDisabled,
	}

	// a plain group: one store failing must not cancel the other's ping
	var g errgroup.Group

	g.Go(func() error {
		if err := s.DB.PingContext(ctx); err != nil {
			report.Database = StoreUnreachable
			return errors.Wrap(ErrDatabaseNotReachable, err.Error())
		}
		return nil
	})

	if s.Redis != nil {
		g.Go(func() error {
			if err := s.Redis.Ping(ctx).Err(); err != nil {
				report.Redis = StoreUnreachable
				return errors.Wrap(ErrRedisNotReachable, err.Error())
			}
			report.Redis = StoreOK
			return nil
		})
	}

	err := g.Wait()
	return report, err
}
