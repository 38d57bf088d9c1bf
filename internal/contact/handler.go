package contact

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mycontacts/mycontacts/internal/apperr"
	"github.com/mycontacts/mycontacts/internal/auth"
)

// Handler exposes contact HTTP endpoints. It must be mounted behind the
// bearer authentication middleware.
type Handler struct {
	service *Service
}

// NewHandler builds a contact HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func ownerID(c *fiber.Ctx) (string, error) {
	id, ok := auth.IdentityFromContext(c.UserContext())
	if !ok {
		return "", apperr.ErrUnauthenticated
	}
	return id.UserID, nil
}

// List returns the caller's contacts.
func (h *Handler) List(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	contacts, err := h.service.List(c.UserContext(), owner)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(contacts)
}

// Get returns one of the caller's contacts.
func (h *Handler) Get(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	contact, err := h.service.Get(c.UserContext(), owner, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(contact)
}

// Create adds a contact owned by the caller.
func (h *Handler) Create(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	var req CreateInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	contact, err := h.service.Create(c.UserContext(), owner, req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(contact)
}

// Update patches one of the caller's contacts.
func (h *Handler) Update(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	var req UpdateInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	contact, err := h.service.Update(c.UserContext(), owner, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(contact)
}

// Delete removes one of the caller's contacts.
func (h *Handler) Delete(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), owner, c.Params("id")); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "contact deleted"})
}
