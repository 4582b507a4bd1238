package selector

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// S selects models of type T. It works on a *bun.DB as well as inside a bun.Tx.
type S[T any] struct {
	DB bun.IDB

	// NotFound is returned instead of sql.ErrNoRows by SelectOne.
	NotFound error
}

func New[T any](db bun.IDB, notFound error) S[T] {
	return S[T]{
		DB:       db,
		NotFound: notFound,
	}
}

func (r S[T]) SelectOne(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (*T, error) {
	var model T
	err := fn(r.DB.NewSelect().Model(&model)).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.NotFound
	} else if err != nil {
		return nil, err
	}

	return &model, nil
}

func (r S[T]) SelectMany(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) ([]*T, error) {
	var models []*T
	err := fn(r.DB.NewSelect().Model(&models)).Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return models, nil
}
