package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
)

// NewApp builds the fiber app with JSON error responses and the routes of h.
// bodyLimit caps request bodies in bytes; fiber's default applies when it is zero.
// middleware runs before every route.
func NewApp(h *Handler, bodyLimit int, middleware ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return Error(c, fe.Code, fe.Message)
			}
			return Error(c, fiber.StatusInternalServerError, msgInternal)
		},
	})
	app.Use(recover.New())
	for _, m := range middleware {
		app.Use(m)
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	h.Register(app)
	return app
}
