package auth

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the register and login endpoints.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler builds the auth HTTP handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type registerResponse struct {
	Message string `json:"message"`
	User    string `json:"user"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register creates an account and returns its identifier.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	if h.logger != nil {
		h.logger.Info("auth.register completed",
			slog.String("user_id", u.ID),
			slog.String("username", u.Username),
		)
	}
	return c.Status(http.StatusCreated).JSON(registerResponse{Message: "user created", User: u.ID})
}

// Login validates credentials and returns a session token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	token, err := h.svc.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(loginResponse{Message: "login successful", Token: token})
}
