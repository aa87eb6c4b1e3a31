package user

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// TokenConfig controls the bearer tokens issued by POST /users/token.
// Only emails listed in Admins get the admin role.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Admins []string
}

type Handler struct {
	service *Service
	token   TokenConfig
	admins  map[string]bool
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewHandler(service *Service, token TokenConfig) *Handler {
	if token.TTL <= 0 {
		token.TTL = 72 * time.Hour
	}
	admins := make(map[string]bool, len(token.Admins))
	for _, email := range token.Admins {
		admins[normalizeEmail(email)] = true
	}
	return &Handler{service: service, token: token, admins: admins}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/users", h.getUsers)
	app.Post("/users", h.createUser)
	app.Post("/users/token", h.issueToken)
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch users"})
	}
	return c.JSON(users)
}

func (h *Handler) createUser(c *fiber.Ctx) error {
	payload := new(createUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(c.UserContext(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrEmailExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already exists"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create user"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// issueToken signs an HS256 token once the caller proves the password. The
// token unlocks the catalog admin routes.
func (h *Handler) issueToken(c *fiber.Ctx) error {
	if len(h.token.Secret) == 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "token issuing is not configured"})
	}

	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil || payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email and password are required"})
	}

	user, err := h.service.Authenticate(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to sign in"})
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    h.roleFor(user),
		"exp":     time.Now().Add(h.token.TTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.token.Secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{"token": signed, "user": user})
}

func (h *Handler) roleFor(u User) string {
	if h.admins[u.Email] {
		return RoleAdmin
	}
	return RoleCustomer
}

// RequireAdmin rejects requests whose verified token, stored by the JWT
// middleware under "user", lacks the admin role.
func RequireAdmin(c *fiber.Ctx) error {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or missing token"})
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin role required"})
	}
	return c.Next()
}
