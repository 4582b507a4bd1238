package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/model"
	v1 "mergington.dev/activities/internal/model/v1"
	"mergington.dev/activities/internal/pkg/observability"
	"mergington.dev/activities/internal/repo"
)

const (
	opSignUp     = "signup"
	opUnregister = "unregister"
)

var ErrRosterLocked = errors.New("roster is being changed by another request")

type Roster struct {
	RosterRepo *repo.Roster

	// RedSync is nil when no Redis is configured; the unique roster index still rejects duplicates.
	RedSync    *redsync.Redsync
	lockExpiry time.Duration
}

func NewRoster(rosterRepo *repo.Roster, rs *redsync.Redsync, conf *appconfig.Config) *Roster {
	return &Roster{
		RosterRepo: rosterRepo,
		RedSync:    rs,
		lockExpiry: conf.RosterLockExpiry,
	}
}

// SignUp enrolls email in the named activity. Capacity is informational and is not checked.
func (s *Roster) SignUp(ctx context.Context, activityName, email string) (*v1.RosterMessage, error) {
	err := s.change(ctx, opSignUp, activityName, email, func(ctx context.Context) error {
		_, err := s.RosterRepo.Enroll(ctx, activityName, email)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &v1.RosterMessage{
		Message: fmt.Sprintf("Signed up %s for %s", email, activityName),
	}, nil
}

// Unregister removes email from the roster of the named activity.
func (s *Roster) Unregister(ctx context.Context, activityName, email string) (*v1.RosterMessage, error) {
	err := s.change(ctx, opUnregister, activityName, email, func(ctx context.Context) error {
		_, err := s.RosterRepo.Unenroll(ctx, activityName, email)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &v1.RosterMessage{
		Message: fmt.Sprintf("Unregistered %s from %s", email, activityName),
	}, nil
}

func (s *Roster) change(ctx context.Context, op, activityName, email string, fn func(ctx context.Context) error) error {
	start := time.Now()
	err := s.withLock(ctx, activityName, email, fn)
	observability.RosterChangeDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	observability.RosterChanges.WithLabelValues(op, outcome(err)).Inc()

	var rosterErr *model.RosterError
	switch {
	case err == nil:
		log.Info().
			Str("evt.name", "roster."+op).
			Str("activity", activityName).
			Str("email", email).
			Msg("roster changed")
	case errors.As(err, &rosterErr):
		log.Debug().
			Str("evt.name", "roster."+op+".rejected").
			Str("activity", activityName).
			Str("email", email).
			Str("kind", rosterErr.Kind.String()).
			Msg(rosterErr.Message)
	}

	return err
}

func (s *Roster) withLock(ctx context.Context, activityName, email string, fn func(ctx context.Context) error) error {
	if s.RedSync == nil {
		return fn(ctx)
	}

	mutex := s.RedSync.NewMutex("mutex:roster:"+activityName+":"+email,
		redsync.WithExpiry(s.lockExpiry),
		redsync.WithTries(8),
		redsync.WithRetryDelay(50*time.Millisecond))
	if err := mutex.LockContext(ctx); err != nil {
		return pkgerrors.Wrap(ErrRosterLocked, err.Error())
	}
	defer func() {
		if _, err := mutex.UnlockContext(context.Background()); err != nil {
			log.Warn().Err(err).
				Str("evt.name", "roster.unlock.failed").
				Str("activity", activityName).
				Msg("failed to release roster lock")
		}
	}()

	return fn(ctx)
}

func outcome(err error) string {
	var rosterErr *model.RosterError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &rosterErr):
		return rosterErr.Kind.String()
	default:
		return "error"
	}
}
