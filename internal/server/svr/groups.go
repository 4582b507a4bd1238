package svr

import (
	"github.com/gofiber/fiber/v2"
)

// Root serves the public roster API and the landing page at the top level.
type Root struct {
	fiber.Router
}

// Meta serves operational endpoints such as health checks.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) (*Root, *Meta) {
	return &Root{Router: app}, &Meta{Router: app.Group("/api/_")}
}
