package service

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/model"
	v1 "mergington.dev/activities/internal/model/v1"
	"mergington.dev/activities/internal/pkg/observability"
	"mergington.dev/activities/internal/repo"
)

type Catalog struct {
	ActivityRepo *repo.Activity

	seed bool
}

func NewCatalog(activityRepo *repo.Activity, conf *appconfig.Config) *Catalog {
	return &Catalog{
		ActivityRepo: activityRepo,
		seed:         conf.SeedOnStart,
	}
}

// InitializeCatalog prepares the store before anything else starts serving.
func InitializeCatalog(lc fx.Lifecycle, c *Catalog) {
	lc.Append(fx.Hook{
		OnStart: c.Initialize,
	})
}

// Initialize creates the schema and seeds the catalog when the store is empty.
func (s *Catalog) Initialize(ctx context.Context) error {
	if err := s.ActivityRepo.Migrate(ctx); err != nil {
		return err
	}

	if !s.seed {
		return nil
	}

	return s.Seed(ctx)
}

// Seed populates the catalog with SeedActivities when the store has no activities.
func (s *Catalog) Seed(ctx context.Context) error {
	seeds := SeedActivities()
	seeded, err := s.ActivityRepo.SeedIfEmpty(ctx, seeds)
	if err != nil {
		return err
	}

	if seeded {
		observability.CatalogSeeded.Set(1)
		log.Info().
			Str("evt.name", "catalog.seeded").
			Strs("activities", lo.Map(seeds, func(a *model.Activity, _ int) string { return a.Name })).
			Msg("seeded empty activity catalog")
	} else {
		observability.CatalogSeeded.Set(0)
		log.Debug().
			Str("evt.name", "catalog.seed.skipped").
			Msg("activity catalog already populated")
	}

	return nil
}

// ListActivities returns every activity keyed by its name.
func (s *Catalog) ListActivities(ctx context.Context) (map[string]*v1.Activity, error) {
	activities, err := s.ActivityRepo.GetActivitiesWithRoster(ctx)
	if err != nil {
		return nil, err
	}

	views := make(map[string]*v1.Activity, len(activities))
	for _, activity := range activities {
		var view v1.Activity
		if err := copier.Copy(&view, activity); err != nil {
			return nil, err
		}
		if view.Participants == nil {
			view.Participants = []string{}
		}
		views[activity.Name] = &view
	}

	return views, nil
}
