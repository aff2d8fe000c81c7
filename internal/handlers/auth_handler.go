package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Me returns the stored profile of the caller.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetByID(c.UserContext(), id.String())
	if err != nil {
		return err
	}
	return c.JSON(user)
}
