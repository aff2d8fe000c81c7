package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxReportPageSize = 100

var (
	errReportNotFound      = apperror.NotFound("report not found")
	errInvalidFishRef      = apperror.Validation("invalid fishReferenceId")
	errUnknownFishRef      = apperror.Validation("fish reference does not exist")
	errInvalidLatitude     = apperror.Validation("latitude must be a number between -90 and 90")
	errInvalidLongitude    = apperror.Validation("longitude must be a number between -180 and 180")
	errInvalidReportStatus = apperror.Validation("status must be one of: PENDING, APPROVED, REJECTED, SOLVED")
	errStatusRace          = apperror.Conflict("report status changed concurrently, reload and retry")
)

// publicUserColumns is the reporter projection exposed on the public feed.
var publicUserColumns = []string{"id", "name", "avatar_url"}

type ReportService struct {
	db       *gorm.DB
	workflow ReportWorkflow
}

func NewReportService(db *gorm.DB, workflow ReportWorkflow) *ReportService {
	return &ReportService{db: db, workflow: workflow}
}

func (s *ReportService) Workflow() ReportWorkflow {
	return s.workflow
}

func withFish(db *gorm.DB) *gorm.DB {
	return db.Preload("FishReference")
}

func withFullUser(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select(userColumns)
	})
}

func withPublicUser(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select(publicUserColumns)
	})
}

func parseCoordinate(raw dto.NumericString, limit float64, invalid *apperror.Error) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < -limit || v > limit {
		return 0, invalid
	}
	return v, nil
}

// Create files a new report for userID. The status is always PENDING.
func (s *ReportService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	lat, err := parseCoordinate(req.Latitude, 90, errInvalidLatitude)
	if err != nil {
		return nil, err
	}
	lng, err := parseCoordinate(req.Longitude, 180, errInvalidLongitude)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var fishID *uuid.UUID
	if raw := strings.TrimSpace(req.FishReferenceID); raw != "" {
		id, err := parseID(raw, errInvalidFishRef)
		if err != nil {
			return nil, err
		}
		var n int64
		if err := db.Model(&models.FishReference{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return nil, apperror.Internal("failed to check fish reference", err)
		}
		if n == 0 {
			return nil, errUnknownFishRef
		}
		fishID = &id
	}

	report := models.Report{
		ID:              uuid.New(),
		UserID:          userID,
		FishReferenceID: fishID,
		Description:     strings.TrimSpace(req.Description),
		PhotoURL:        req.PhotoURL,
		Latitude:        lat,
		Longitude:       lng,
		AddressText:     strings.TrimSpace(req.AddressText),
		Status:          models.StatusPending,
	}
	if err := db.Omit("User", "FishReference").Create(&report).Error; err != nil {
		return nil, apperror.Internal("failed to create report", err)
	}
	return &report, nil
}

// ListByUser returns the caller's own reports, newest first.
func (s *ReportService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).
		Scopes(withFish).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, apperror.Internal("failed to list user reports", err)
	}
	return reports, nil
}

// ListApproved is the public feed. Reporters are loaded with id, name and
// avatar only.
func (s *ReportService) ListApproved(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).
		Scopes(withFish, withPublicUser).
		Where("status = ?", models.StatusApproved).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, apperror.Internal("failed to list approved reports", err)
	}
	return reports, nil
}

// ListAll returns reports for operators with the full reporter projection.
// A zero Limit returns every matching report.
func (s *ReportService) ListAll(ctx context.Context, filter dto.ReportFilter) ([]models.Report, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Report{})

	if filter.Status != "" {
		status := models.ReportStatus(strings.ToUpper(strings.TrimSpace(filter.Status)))
		if !status.Valid() {
			return nil, 0, errInvalidReportStatus
		}
		query = query.Where("status = ?", status)
	}
	if filter.UserID != "" {
		id, err := parseID(filter.UserID, apperror.Validation("invalid user_id filter"))
		if err != nil {
			return nil, 0, err
		}
		query = query.Where("user_id = ?", id)
	}
	if filter.FishReferenceID != "" {
		id, err := parseID(filter.FishReferenceID, apperror.Validation("invalid fish_reference_id filter"))
		if err != nil {
			return nil, 0, err
		}
		query = query.Where("fish_reference_id = ?", id)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal("failed to count reports", err)
	}

	query = query.Scopes(withFish, withFullUser).Order("created_at DESC")
	if filter.Limit > 0 {
		limit := filter.Limit
		if limit > maxReportPageSize {
			limit = maxReportPageSize
		}
		query = query.Limit(limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		return nil, 0, apperror.Internal("failed to list reports", err)
	}
	return reports, total, nil
}

func (s *ReportService) GetByID(ctx context.Context, rawID string) (*models.Report, error) {
	id, err := parseID(rawID, errReportNotFound)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

func (s *ReportService) get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := s.db.WithContext(ctx).Scopes(withFish, withFullUser).First(&report, "id = ?", id).Error
	if err != nil {
		return nil, translateLookup(err, errReportNotFound, "failed to load report")
	}
	return &report, nil
}

// UpdateStatus moves a report along the triage workflow. The write is guarded
// by the status that was checked, so a concurrent change surfaces as a
// conflict instead of being overwritten.
func (s *ReportService) UpdateStatus(ctx context.Context, rawID string, req *dto.UpdateReportStatusRequest) (*models.Report, error) {
	id, err := parseID(rawID, errReportNotFound)
	if err != nil {
		return nil, err
	}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	status := models.ReportStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		return nil, errInvalidReportStatus
	}

	db := s.db.WithContext(ctx)

	var current models.Report
	if err := db.Select("id", "status").First(&current, "id = ?", id).Error; err != nil {
		return nil, translateLookup(err, errReportNotFound, "failed to load report")
	}
	if !s.workflow.CanTransition(current.Status, status) {
		return nil, apperror.Validation(fmt.Sprintf("cannot change report status from %s to %s", current.Status, status)).
			WithMeta("from", current.Status).
			WithMeta("allowed", s.workflow.Next(current.Status))
	}

	updates := map[string]interface{}{"status": status}
	if req.AdminNote != nil {
		updates["admin_note"] = *req.AdminNote
	}

	result := db.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, current.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, apperror.Internal("failed to update report status", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := s.get(ctx, id); err != nil {
			return nil, err
		}
		return nil, errStatusRace
	}
	return s.get(ctx, id)
}

func (s *ReportService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, errReportNotFound)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Report{})
	if result.Error != nil {
		return apperror.Internal("failed to delete report", result.Error)
	}
	if result.RowsAffected == 0 {
		return errReportNotFound
	}
	return nil
}

// CountByStatus counts reports currently in status.
func (s *ReportService) CountByStatus(ctx context.Context, status models.ReportStatus) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Report{}).Where("status = ?", status).Count(&n).Error; err != nil {
		return 0, apperror.Internal("failed to count reports", err)
	}
	return n, nil
}
