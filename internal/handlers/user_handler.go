package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/zara-ai/backend/internal/dto"
	"github.com/zara-ai/backend/internal/middleware"
	"github.com/zara-ai/backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.userService.UpdateProfile(c.UserContext(), user, &req)
	if err != nil {
		return internalError(c, "update-profile", err)
	}

	return c.JSON(dto.MessageWithData("Profile updated successfully",
		fiber.Map{"user": dto.NewUserResponse(updated)}))
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.userService.ChangePassword(c.UserContext(), user, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return badRequest(c, "Current password is incorrect")
		}
		return internalError(c, "change-password", err)
	}

	return c.JSON(dto.Message("Password changed successfully"))
}

func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.UpdateAvatarRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.userService.UpdateAvatar(c.UserContext(), user, req.AvatarURL); err != nil {
		return internalError(c, "update-avatar", err)
	}

	return c.JSON(dto.MessageWithData("Avatar updated successfully",
		fiber.Map{"avatar": user.Avatar}))
}

func (h *UserHandler) Dashboard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(dto.OK(dto.DashboardResponse{
		User:  dto.NewUserResponse(user),
		Stats: h.userService.Dashboard(user),
	}))
}

func (h *UserHandler) Activity(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(dto.OK(fiber.Map{"activity": h.userService.Activity(user)}))
}

func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Password == "" {
		return badRequest(c, "Password is required to delete account")
	}
	if req.ConfirmDeletion != "DELETE" {
		return badRequest(c, `Please type "DELETE" to confirm account deletion`)
	}

	err := h.userService.DeactivateAccount(c.UserContext(), user, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return badRequest(c, "Incorrect password")
		}
		return internalError(c, "delete-account", err)
	}

	c.ClearCookie(middleware.RefreshCookie)
	return c.JSON(dto.Message("Account deactivated successfully"))
}
