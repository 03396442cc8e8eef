package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/waitlisthq/waitlist-service/internal/api/dto"
	"github.com/waitlisthq/waitlist-service/internal/service"
	apperrors "github.com/waitlisthq/waitlist-service/pkg/util/errorutil"
)

// ContactHandler exposes the public contact form.
type ContactHandler struct {
	contacts *service.ContactService
}

// NewContactHandler constructs handler.
func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(service.MsgContactFieldsRequired, nil)
	}

	contact, err := h.contacts.Submit(c.UserContext(), req.Name, req.Email, req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Success("Message submitted successfully", dto.NewContactResponse(contact)))
}

// List handles GET /contact. It is intentionally unauthenticated.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	contacts, err := h.contacts.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("Success", dto.NewContactList(contacts)))
}
