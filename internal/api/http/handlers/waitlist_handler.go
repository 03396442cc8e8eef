package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/waitlisthq/waitlist-service/internal/api/dto"
	"github.com/waitlisthq/waitlist-service/internal/service"
	apperrors "github.com/waitlisthq/waitlist-service/pkg/util/errorutil"
)

// WaitlistHandler exposes the public waitlist.
type WaitlistHandler struct {
	waitlist *service.WaitlistService
}

// NewWaitlistHandler constructs handler.
func NewWaitlistHandler(waitlist *service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{waitlist: waitlist}
}

// Join handles POST /waitlist. A repeat email answers 200 with the existing entry.
func (h *WaitlistHandler) Join(c *fiber.Ctx) error {
	var req dto.WaitlistRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(service.MsgEmailRequired, nil)
	}

	entry, created, err := h.waitlist.Join(c.UserContext(), req.Email)
	if err != nil {
		return err
	}

	if !created {
		return c.JSON(dto.Success("You’re already on the waitlist", dto.NewWaitlistResponse(entry)))
	}
	return c.Status(http.StatusCreated).JSON(dto.Success("Successfully joined the waitlist!", dto.NewWaitlistResponse(entry)))
}

// List handles GET /waitlist. It is intentionally unauthenticated.
func (h *WaitlistHandler) List(c *fiber.Ctx) error {
	entries, err := h.waitlist.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("Success", dto.NewWaitlistList(entries)))
}
