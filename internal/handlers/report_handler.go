package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

var (
	errReportHidden   = apperror.NotFound("report not found")
	errNotReportOwner = apperror.Authorization("you can only delete your own reports")
)

type ReportHandler struct {
	reportService *services.ReportService
	uploader      storage.Uploader
}

func NewReportHandler(reportService *services.ReportService, uploader storage.Uploader) *ReportHandler {
	return &ReportHandler{reportService: reportService, uploader: uploader}
}

// ListAll is the operator listing with optional status, user_id,
// fish_reference_id, limit and offset query filters.
func (h *ReportHandler) ListAll(c *fiber.Ctx) error {
	var filter dto.ReportFilter
	if err := c.QueryParser(&filter); err != nil {
		return apperror.Validation("invalid query parameters")
	}
	reports, total, err := h.reportService.ListAll(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.ReportListResponse{
		Reports: reports,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
}

func (h *ReportHandler) ListApproved(c *fiber.Ctx) error {
	reports, err := h.reportService.ListApproved(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPublicReports(reports))
}

func (h *ReportHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	reports, err := h.reportService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(reports)
}

// Get shows approved reports to anyone. Other reports are only visible to
// their reporter and admins; everyone else gets a 404.
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	report, err := h.reportService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	caller, authenticated := middleware.OptionalIdentity(c)
	if authenticated && (caller.IsAdmin() || caller.UserID == report.UserID) {
		return c.JSON(report)
	}
	if report.Status != models.StatusApproved {
		return errReportHidden
	}
	return c.JSON(dto.NewPublicReport(report))
}

// Create accepts JSON with a photoUrl or a multipart form with a "photo" file.
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateReportRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	photo, err := formImage(c, h.uploader, "photo", storage.FolderReports)
	if err != nil {
		return err
	}
	if photo != "" {
		req.PhotoURL = photo
	}

	report, err := h.reportService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateReportStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	report, err := h.reportService.UpdateStatus(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	caller, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}
	report, err := h.reportService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if report.UserID != caller.UserID && !caller.IsAdmin() {
		return errNotReportOwner
	}
	if err := h.reportService.Delete(c.UserContext(), report.ID.String()); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Report deleted successfully"})
}
