package roster

import (
	"errors"

	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/pkg/apierr"
	"mergington.dev/activities/internal/pkg/fiberstore"
	"mergington.dev/activities/internal/pkg/middlewares"
	"mergington.dev/activities/internal/server/svr"
	"mergington.dev/activities/internal/service"
	"mergington.dev/activities/internal/util/rekuest"
)

type ActivityController struct {
	fx.In

	CatalogService   *service.Catalog
	RosterService    *service.Roster
	RedSync          *redsync.Redsync
	IdempotencyStore *fiberstore.Redis
	Config           *appconfig.Config
}

type rosterPath struct {
	ActivityName string `params:"activityName" validate:"required"`
}

type rosterRequest struct {
	Email string `query:"email" validate:"required"`
}

func parseRosterRequest(ctx *fiber.Ctx) (*rosterPath, *rosterRequest, error) {
	var path rosterPath
	if err := rekuest.ValidParams(ctx, &path); err != nil {
		return nil, nil, err
	}

	var req rosterRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return nil, nil, err
	}

	return &path, &req, nil
}

func RegisterActivity(root *svr.Root, c ActivityController) {
	idempotency := &middlewares.IdempotencyConfig{
		Lifetime:            c.Config.IdempotencyLifetime,
		KeyHeader:           constant.IdempotencyKeyHeader,
		KeepResponseHeaders: []string{fiber.HeaderContentType},
		RedSync:             c.RedSync,
	}
	if c.IdempotencyStore != nil {
		idempotency.Storage = c.IdempotencyStore
	}
	idempotent := middlewares.Idempotency(idempotency)

	root.Get("/activities", c.GetActivities)
	root.Post("/activities/:activityName/signup", idempotent, c.SignUp)
	root.Delete("/activities/:activityName/unregister", idempotent, c.Unregister)
}

func (c *ActivityController) GetActivities(ctx *fiber.Ctx) error {
	activities, err := c.CatalogService.ListActivities(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(activities)
}

func (c *ActivityController) SignUp(ctx *fiber.Ctx) error {
	path, req, err := parseRosterRequest(ctx)
	if err != nil {
		return err
	}

	msg, err := c.RosterService.SignUp(ctx.UserContext(), path.ActivityName, req.Email)
	if err != nil {
		return rosterError(err)
	}

	return ctx.JSON(msg)
}

func (c *ActivityController) Unregister(ctx *fiber.Ctx) error {
	path, req, err := parseRosterRequest(ctx)
	if err != nil {
		return err
	}

	msg, err := c.RosterService.Unregister(ctx.UserContext(), path.ActivityName, req.Email)
	if err != nil {
		return rosterError(err)
	}

	return ctx.JSON(msg)
}

// rosterError maps roster outcomes to responses: NotFound is a 404, Conflict is a 400.
func rosterError(err error) error {
	if errors.Is(err, service.ErrRosterLocked) {
		return apierr.ErrConflict.Detailed("Roster is being changed by another request, please retry")
	}

	var re *model.RosterError
	if !errors.As(err, &re) {
		return err
	}

	switch re.Kind {
	case model.RosterNotFound:
		return apierr.ErrNotFound.Detailed(re.Message)
	case model.RosterConflict:
		return apierr.ErrConflict.Detailed(re.Message)
	default:
		return err
	}
}
