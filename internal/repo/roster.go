package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/repo/selector"
)

const pgUniqueViolation = "23505"

// pgFieldError is satisfied by pgdriver.Error.
type pgFieldError interface {
	error
	Field(k byte) string
}

type Roster struct {
	db *bun.DB
}

func NewRoster(db *bun.DB) *Roster {
	return &Roster{db: db}
}

// Enroll adds email to the roster of the named activity. It fails with model.ErrActivityNotFound
// or model.ErrAlreadySignedUp; any other error is a storage failure.
func (r *Roster) Enroll(ctx context.Context, activityName, email string) (*model.Enrollment, error) {
	var enrollment *model.Enrollment
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		activity, err := activityByName(ctx, tx, activityName)
		if err != nil {
			return err
		}

		exists, err := tx.NewSelect().
			Model((*model.Enrollment)(nil)).
			Where("p.activity_id = ?", activity.ActivityID).
			Where("p.email = ?", email).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return model.ErrAlreadySignedUp
		}

		enrollment = &model.Enrollment{
			Email:      email,
			ActivityID: activity.ActivityID,
			Activity:   activity,
		}
		if _, err := tx.NewInsert().Model(enrollment).Exec(ctx); err != nil {
			// a concurrent enroll of the same pair got in between the check and the insert
			if isUniqueViolation(err) {
				return model.ErrAlreadySignedUp
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return enrollment, nil
}

// Unenroll removes email from the roster of the named activity. It fails with
// model.ErrActivityNotFound or model.ErrNotSignedUp; any other error is a storage failure.
func (r *Roster) Unenroll(ctx context.Context, activityName, email string) (*model.Enrollment, error) {
	var enrollment *model.Enrollment
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		activity, err := activityByName(ctx, tx, activityName)
		if err != nil {
			return err
		}

		enrollment, err = selector.New[model.Enrollment](tx, model.ErrNotSignedUp).
			SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.
					Where("p.activity_id = ?", activity.ActivityID).
					Where("p.email = ?", email).
					Order("p.id ASC")
			})
		if err != nil {
			return err
		}

		if _, err := tx.NewDelete().Model(enrollment).WherePK().Exec(ctx); err != nil {
			return err
		}

		enrollment.Activity = activity
		return nil
	})
	if err != nil {
		return nil, err
	}

	return enrollment, nil
}

func activityByName(ctx context.Context, db bun.IDB, name string) (*model.Activity, error) {
	return selector.New[model.Activity](db, model.ErrActivityNotFound).
		SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("a.name = ?", name)
		})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgFieldError
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}
	// sqlite drivers only expose the extended result code through driver specific types
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
