package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mpopescu/lidl-receipts/internal/database"
	"github.com/mpopescu/lidl-receipts/internal/models"
)

// AdminListUsers returns a paginated list of all users
func (h *Handler) AdminListUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := h.db.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list users")
	}

	return SuccessWithMeta(c, users, total, limit, offset)
}

// AdminGetUser returns a single user by ID
func (h *Handler) AdminGetUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.db.GetUserByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return Error(c, fiber.StatusNotFound, "user not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get user")
	}

	return Success(c, user)
}

// AdminUpdateUser updates a user's email, username, or role
func (h *Handler) AdminUpdateUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	var req models.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.db.AdminUpdateUser(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return Error(c, fiber.StatusNotFound, "user not found")
		}
		if errors.Is(err, database.ErrEmailExists) {
			return Error(c, fiber.StatusConflict, "email already registered")
		}
		if errors.Is(err, database.ErrUsernameExists) {
			return Error(c, fiber.StatusConflict, "username already taken")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update user")
	}

	return Success(c, user)
}

// AdminDeleteUser deletes a user by ID
func (h *Handler) AdminDeleteUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.db.DeleteUser(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return Error(c, fiber.StatusNotFound, "user not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete user")
	}

	return Success(c, fiber.Map{"deleted": true})
}
