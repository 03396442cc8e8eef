package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/waitlisthq/waitlist-service/internal/api/dto"
	"github.com/waitlisthq/waitlist-service/internal/auth"
	"github.com/waitlisthq/waitlist-service/internal/service"
	apperrors "github.com/waitlisthq/waitlist-service/pkg/util/errorutil"
)

// AdminHandler exposes signup, login and self-management for admins.
type AdminHandler struct {
	admins *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admins *service.AdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

// Signup handles POST /admin/signup.
func (h *AdminHandler) Signup(c *fiber.Ctx) error {
	var req dto.AdminCredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	res, err := h.admins.Signup(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.Success("Admin registered", dto.AuthResponse{
		ID:               res.Admin.ID,
		Username:         res.Admin.Username,
		Token:            res.Token,
		ExpiresAt:        res.ExpiresAt,
		PasswordStrength: res.Strength,
	}))
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminCredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	res, err := h.admins.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.Success("Login successful", dto.AuthResponse{
		ID:        res.Admin.ID,
		Username:  res.Admin.Username,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	}))
}

// Update handles PATCH /admin/update. The admin id comes from the token only.
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No adminId received from token")
	}

	var req dto.AdminUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	admin, err := h.admins.Update(c.UserContext(), principal.AdminID, service.AdminChanges{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.Success("Admin updated successfully", dto.NewAdminResponse(admin)))
}

// Delete handles DELETE /admin/delete. The admin id comes from the token only.
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No adminId received from token")
	}

	if err := h.admins.Delete(c.UserContext(), principal.AdminID); err != nil {
		return err
	}
	return c.JSON(dto.Success("Admin deleted successfully", nil))
}
