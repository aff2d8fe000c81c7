package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.DashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (h *AdminHandler) Reports(c *fiber.Ctx) error {
	reports, err := h.adminService.AllReports(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(reports)
}

func (h *AdminHandler) ReportsMap(c *fiber.Ctx) error {
	reports, err := h.adminService.ReportsForMap(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(reports)
}

func (h *AdminHandler) UpdateReportStatus(c *fiber.Ctx) error {
	var req dto.UpdateReportStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	report, err := h.adminService.UpdateReportStatus(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(report)
}
