package infra

import (
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/fiberstore"
)

func RedSync(client *goredislib.Client) *redsync.Redsync {
	if client == nil {
		return nil
	}
	return redsync.New(goredis.NewPool(client))
}

func IdempotencyStore(client *goredislib.Client) *fiberstore.Redis {
	if client == nil {
		return nil
	}
	return fiberstore.NewRedis(client, constant.IdempotencyStorePrefix)
}
