package roster

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("controller.roster", fx.Invoke(
		RegisterActivity,
	))
}
