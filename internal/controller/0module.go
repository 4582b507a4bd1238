package controller

import (
	"go.uber.org/fx"

	controllermeta "mergington.dev/activities/internal/controller/meta"
	controllerroster "mergington.dev/activities/internal/controller/roster"
)

func Module() fx.Option {
	return fx.Module("controller",
		controllermeta.Module(),
		controllerroster.Module(),
	)
}
