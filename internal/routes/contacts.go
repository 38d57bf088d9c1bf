package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mycontacts/mycontacts/internal/contact"
)

// RegisterContactRoutes wires contact CRUD behind the given middlewares,
// which must authenticate the caller before anything else runs.
func RegisterContactRoutes(r fiber.Router, h *contact.Handler, mws ...fiber.Handler) {
	group := r.Group("/contacts", mws...)
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
	group.Patch("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}
