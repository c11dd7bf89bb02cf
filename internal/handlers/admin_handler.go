package handlers

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/zara-ai/backend/internal/dto"
	"github.com/zara-ai/backend/internal/models"
	"github.com/zara-ai/backend/internal/services"
	"github.com/zara-ai/backend/internal/store"
)

type AdminHandler struct {
	userService *services.UserService
}

func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	filter := store.ListFilter{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Status: c.Query("status"),
	}
	if v := c.Query("verified"); v != "" {
		verified, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "Invalid verified filter")
		}
		filter.Verified = &verified
	}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return badRequest(c, "Invalid account status")
	}

	users, total, err := h.userService.ListUsers(c.UserContext(), filter)
	if err != nil {
		return internalError(c, "admin-list-users", err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	return c.JSON(dto.OK(dto.UserListResponse{
		Users: out,
		Pagination: dto.Pagination{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			TotalUsers:  total,
			HasNext:     filter.Page < totalPages,
			HasPrev:     filter.Page > 1,
		},
	}))
}

func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if !models.ValidStatus(req.Status) {
		return badRequest(c, "Invalid account status")
	}

	user, err := h.userService.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		return internalError(c, "admin-update-status", err)
	}

	return c.JSON(dto.MessageWithData(
		fmt.Sprintf("User account status updated to %s", req.Status),
		fiber.Map{"user": dto.NewUserResponse(user)},
	))
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats(c.UserContext())
	if err != nil {
		return internalError(c, "admin-stats", err)
	}
	return c.JSON(dto.OK(dto.AdminStats{
		TotalUsers:      stats.Total,
		VerifiedUsers:   stats.Verified,
		UnverifiedUsers: stats.Unverified,
		ActiveUsers:     stats.Active,
	}))
}
