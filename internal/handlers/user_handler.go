package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

var errRoleChange = apperror.Authorization("only admins can change roles")

type UserHandler struct {
	userService *services.UserService
	uploader    storage.Uploader
}

func NewUserHandler(userService *services.UserService, uploader storage.Uploader) *UserHandler {
	return &UserHandler{userService: userService, uploader: uploader}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	avatar, err := formImage(c, h.uploader, "avatar", storage.FolderAvatars)
	if err != nil {
		return err
	}
	if avatar != "" {
		req.AvatarURL = avatar
	}

	user, err := h.userService.Create(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	target, err := services.ParseUserID(c.Params("id"))
	if err != nil {
		return err
	}
	if _, err := middleware.RequireSelfOrAdmin(c, target); err != nil {
		return err
	}
	user, err := h.userService.GetByID(c.UserContext(), target.String())
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Update accepts JSON or a multipart form with an optional "avatar" image.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	target, err := services.ParseUserID(c.Params("id"))
	if err != nil {
		return err
	}
	caller, err := middleware.RequireSelfOrAdmin(c, target)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Role != nil && !caller.IsAdmin() {
		return errRoleChange
	}

	avatar, err := formImage(c, h.uploader, "avatar", storage.FolderAvatars)
	if err != nil {
		return err
	}
	if avatar != "" {
		req.AvatarURL = &avatar
	}

	user, err := h.userService.Update(c.UserContext(), target.String(), &req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.userService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}
