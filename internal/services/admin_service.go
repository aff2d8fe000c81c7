package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"gorm.io/gorm"
)

type AdminService struct {
	db      *gorm.DB
	reports *ReportService
}

func NewAdminService(db *gorm.DB, reports *ReportService) *AdminService {
	return &AdminService{db: db, reports: reports}
}

// DashboardStats runs independent counts. They are not taken from one
// snapshot, so a report moving between statuses mid-call may be counted in
// neither or both buckets.
func (s *AdminService) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	var stats dto.DashboardStats

	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", models.RoleUser).
		Count(&stats.CountUser).Error; err != nil {
		return nil, apperror.Internal("failed to count users", err)
	}

	counts := map[models.ReportStatus]*int64{
		models.StatusPending:  &stats.CountReportPending,
		models.StatusApproved: &stats.CountReportApproved,
		models.StatusRejected: &stats.CountReportRejected,
		models.StatusSolved:   &stats.CountReportSolved,
	}
	for _, status := range models.ReportStatuses {
		n, err := s.reports.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		*counts[status] = n
	}
	return &stats, nil
}

// AllReports is the joined operator listing, newest first.
func (s *AdminService) AllReports(ctx context.Context) ([]models.Report, error) {
	reports, _, err := s.reports.ListAll(ctx, dto.ReportFilter{})
	return reports, err
}

// ReportsForMap serves the map view; it is the same listing as AllReports.
func (s *AdminService) ReportsForMap(ctx context.Context) ([]models.Report, error) {
	return s.AllReports(ctx)
}

func (s *AdminService) UpdateReportStatus(ctx context.Context, rawID string, req *dto.UpdateReportStatusRequest) (*models.Report, error) {
	return s.reports.UpdateStatus(ctx, rawID, req)
}
