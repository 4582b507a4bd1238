package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/repo/selector"
)

const rosterIndexName = "participants_activity_id_email_key"

type Activity struct {
	db *bun.DB
}

func NewActivity(db *bun.DB) *Activity {
	return &Activity{db: db}
}

// Migrate creates the catalog and roster tables and the roster uniqueness index when missing.
func (r *Activity) Migrate(ctx context.Context) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewCreateTable().
			Model((*model.Activity)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return errors.Wrap(err, "failed to create activities table")
		}

		if _, err := tx.NewCreateTable().
			Model((*model.Enrollment)(nil)).
			IfNotExists().
			ForeignKey(`("activity_id") REFERENCES "activities" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "failed to create participants table")
		}

		if _, err := tx.NewCreateIndex().
			Model((*model.Enrollment)(nil)).
			Unique().
			IfNotExists().
			Index(rosterIndexName).
			Column("activity_id", "email").
			Exec(ctx); err != nil {
			return errors.Wrap(err, "failed to create roster index")
		}

		return nil
	})
}

// SeedIfEmpty inserts seeds with their rosters when the catalog has no activities at all.
// It reports whether anything was inserted.
func (r *Activity) SeedIfEmpty(ctx context.Context, seeds []*model.Activity) (bool, error) {
	seeded := false
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.NewSelect().Model((*model.Activity)(nil)).Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, activity := range seeds {
			if _, err := tx.NewInsert().Model(activity).Exec(ctx); err != nil {
				return errors.Wrapf(err, "failed to seed activity %q", activity.Name)
			}
			if len(activity.Enrollments) == 0 {
				continue
			}
			for _, enrollment := range activity.Enrollments {
				enrollment.ActivityID = activity.ActivityID
			}
			if _, err := tx.NewInsert().Model(&activity.Enrollments).Exec(ctx); err != nil {
				return errors.Wrapf(err, "failed to seed roster of %q", activity.Name)
			}
		}

		seeded = true
		return nil
	})

	return seeded, err
}

// GetActivitiesWithRoster returns the whole catalog with every roster in enrollment order.
func (r *Activity) GetActivitiesWithRoster(ctx context.Context) ([]*model.Activity, error) {
	var activities []*model.Activity
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		activities, err = selector.New[model.Activity](tx, model.ErrActivityNotFound).
			SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.
					Relation("Enrollments", orderRoster).
					Order("a.id ASC")
			})
		return err
	})
	if err != nil {
		return nil, err
	}

	return activities, nil
}

// GetActivityByName returns one activity with its roster, or model.ErrActivityNotFound.
func (r *Activity) GetActivityByName(ctx context.Context, name string) (*model.Activity, error) {
	return selector.New[model.Activity](r.db, model.ErrActivityNotFound).
		SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Relation("Enrollments", orderRoster).
				Where("a.name = ?", name)
		})
}

func orderRoster(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("p.id ASC")
}
