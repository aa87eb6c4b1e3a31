package delivery

import "github.com/gofiber/fiber/v2"

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/delivery-options", h.getDeliveryOptions)
}

func (h *Handler) getDeliveryOptions(c *fiber.Ctx) error {
	return c.JSON(h.catalog.ListOptions())
}
