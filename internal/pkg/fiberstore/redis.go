package fiberstore

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis implements fiber.Storage with one redis key per entry under Prefix, so every entry
// can carry its own expiry.
type Redis struct {
	Client *redis.Client
	Prefix string
}

var _ fiber.Storage = (*Redis)(nil)

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{
		Client: client,
		Prefix: prefix,
	}
}

func (r *Redis) key(k string) string {
	return r.Prefix + ":" + k
}

// Close implements fiber.Storage. The client is owned by the fx graph, so it is left open.
func (r *Redis) Close() error {
	return nil
}

// Delete implements fiber.Storage
func (r *Redis) Delete(key string) error {
	return r.Client.Del(context.Background(), r.key(key)).Err()
}

// Get implements fiber.Storage
func (r *Redis) Get(key string) ([]byte, error) {
	val, err := r.Client.Get(context.Background(), r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Reset implements fiber.Storage
func (r *Redis) Reset() error {
	ctx := context.Background()
	iter := r.Client.Scan(ctx, 0, r.Prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Set implements fiber.Storage
func (r *Redis) Set(key string, val []byte, exp time.Duration) error {
	return r.Client.Set(context.Background(), r.key(key), val, exp).Err()
}
