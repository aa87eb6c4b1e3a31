package product

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/products", h.getProducts)
	app.Get("/products/:id", h.getProduct)
}

// RegisterProtectedRoutes registers catalog writes. The caller mounts these
// behind the JWT middleware.
func (h *Handler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/products", h.createProducts)
	router.Delete("/products/:id", h.deleteProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		slog.Error("list products failed", slog.Any("err", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch products"})
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}

// createProducts accepts either a single product or an array and inserts
// them in one batch.
func (h *Handler) createProducts(c *fiber.Ctx) error {
	var products []Product
	if err := c.BodyParser(&products); err != nil {
		single := new(Product)
		if err := c.BodyParser(single); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		products = []Product{*single}
	}

	// report all validation errors of the first bad item together
	for i, p := range products {
		if ves := p.Validate(); len(ves) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"index": i, "errors": ves})
		}
	}

	n, err := h.service.BulkInsert(c.UserContext(), products)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrDuplicateID):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"inserted": n})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
