package meta

import (
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/server/svr"
	"mergington.dev/activities/web"
)

func RegisterIndex(root *svr.Root) error {
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return err
	}

	root.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(constant.StaticIndexPath, fiber.StatusTemporaryRedirect)
	})

	root.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(static),
		MaxAge: 3600,
	}))

	return nil
}
