package cart

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the cart service over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/cart-items", h.getCartItems)
	app.Post("/cart-items", h.addCartItem)
	app.Put("/cart-items/:productId", h.updateCartItem)
	app.Delete("/cart-items/:productId", h.removeCartItem)
}

type addRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateRequest struct {
	Quantity         *int    `json:"quantity"`
	DeliveryOptionID *string `json:"deliveryOptionId"`
}

func (h *Handler) getCartItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.UserContext(), c.Query("expand"))
	if err != nil {
		return h.writeError(c, err, "Failed to fetch cart items")
	}
	return c.JSON(items)
}

func (h *Handler) addCartItem(c *fiber.Ctx) error {
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body: " + err.Error()})
	}

	line, err := h.service.AddItem(c.UserContext(), payload.ProductID, payload.Quantity)
	if err != nil {
		return h.writeError(c, err, "Failed to add item to cart")
	}
	return c.JSON(fiber.Map{"message": "Product added to cart", "cartItem": line})
}

func (h *Handler) updateCartItem(c *fiber.Ctx) error {
	payload := new(updateRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body: " + err.Error()})
		}
	}

	line, err := h.service.UpdateItem(c.UserContext(), c.Params("productId"), payload.Quantity, payload.DeliveryOptionID)
	if err != nil {
		return h.writeError(c, err, "Failed to update cart item")
	}
	return c.JSON(fiber.Map{"message": "Cart item updated", "cartItem": line})
}

func (h *Handler) removeCartItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(c.UserContext(), c.Params("productId")); err != nil {
		return h.writeError(c, err, "Failed to remove cart item")
	}
	return c.JSON(fiber.Map{"message": "Cart item removed"})
}

func (h *Handler) writeError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	default:
		slog.Error(fallback, slog.String("path", c.Path()), slog.Any("err", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": fallback})
	}
}
