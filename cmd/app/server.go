package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jwtware "github.com/gofiber/jwt/v2"

	"github.com/wichananm65/shop-backend/internal/cart"
	"github.com/wichananm65/shop-backend/internal/delivery"
	"github.com/wichananm65/shop-backend/internal/logger"
	"github.com/wichananm65/shop-backend/internal/product"
	"github.com/wichananm65/shop-backend/internal/user"
)

const greeting = "Hello, shop backend!"

// services is everything the HTTP layer needs, already wired.
type services struct {
	products   *product.Service
	users      *user.Service
	cart       *cart.Service
	deliveries *delivery.Catalog

	jwtSecret string
	jwtTTL    time.Duration
	admins    []string
	imagesDir string
	log       *slog.Logger
}

func newApp(s services) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())
	setupCORS(app)
	app.Use(logger.Requests(s.log))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(greeting)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if s.imagesDir != "" {
		app.Static("/images", s.imagesDir)
	}

	delivery.NewHandler(s.deliveries).RegisterPublicRoutes(app)
	cart.NewHandler(s.cart).RegisterPublicRoutes(app)
	user.NewHandler(s.users, user.TokenConfig{Secret: []byte(s.jwtSecret), TTL: s.jwtTTL, Admins: s.admins}).RegisterPublicRoutes(app)

	productHandler := product.NewHandler(s.products)
	productHandler.RegisterPublicRoutes(app)

	if s.jwtSecret == "" {
		s.log.Warn("JWT_SECRET not set; product write routes are disabled")
		return app
	}
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(s.jwtSecret),
		// only catalog writes need a token, and it must carry the admin role
		Filter: func(c *fiber.Ctx) bool {
			return !isCatalogWrite(c)
		},
		SuccessHandler: user.RequireAdmin,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or missing token"})
		},
	}))
	productHandler.RegisterProtectedRoutes(app)

	return app
}

func isCatalogWrite(c *fiber.Ctx) bool {
	if c.Method() != fiber.MethodPost && c.Method() != fiber.MethodDelete {
		return false
	}
	p := c.Path()
	return p == "/products" || strings.HasPrefix(p, "/products/")
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}
