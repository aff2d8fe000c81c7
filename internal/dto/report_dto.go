package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"github.com/google/uuid"
)

// NumericString accepts both JSON numbers and strings so coordinates can come
// from JSON bodies and multipart forms alike.
type NumericString string

func (n *NumericString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = NumericString(num.String())
	return nil
}

// CreateReportRequest has no status field: new reports always start PENDING.
type CreateReportRequest struct {
	FishReferenceID string        `json:"fishReferenceId" form:"fishReferenceId"`
	Description     string        `json:"description" form:"description" validate:"required,max=5000"`
	PhotoURL        string        `json:"photoUrl" form:"photoUrl" validate:"required,max=1024"`
	Latitude        NumericString `json:"latitude" form:"latitude" validate:"required"`
	Longitude       NumericString `json:"longitude" form:"longitude" validate:"required"`
	AddressText     string        `json:"addressText" form:"addressText" validate:"max=500"`
}

type UpdateReportStatusRequest struct {
	Status    string  `json:"status" validate:"required"`
	AdminNote *string `json:"adminNote" validate:"omitempty,max=1000"`
}

type ReportFilter struct {
	Status          string `query:"status"`
	UserID          string `query:"user_id"`
	FishReferenceID string `query:"fish_reference_id"`
	Limit           int    `query:"limit"`
	Offset          int    `query:"offset"`
}

type ReportListResponse struct {
	Reports []models.Report `json:"reports"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// PublicUser is the reporter projection shown on the public feed.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
}

type PublicReport struct {
	ID              uuid.UUID             `json:"id"`
	UserID          uuid.UUID             `json:"userId"`
	FishReferenceID *uuid.UUID            `json:"fishReferenceId"`
	Description     string                `json:"description"`
	PhotoURL        string                `json:"photoUrl"`
	Latitude        float64               `json:"latitude"`
	Longitude       float64               `json:"longitude"`
	AddressText     string                `json:"addressText"`
	Status          models.ReportStatus   `json:"status"`
	AdminNote       string                `json:"adminNote"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	User            *PublicUser           `json:"user,omitempty"`
	FishReference   *models.FishReference `json:"fishReference,omitempty"`
}

func NewPublicReport(r *models.Report) PublicReport {
	pr := PublicReport{
		ID:              r.ID,
		UserID:          r.UserID,
		FishReferenceID: r.FishReferenceID,
		Description:     r.Description,
		PhotoURL:        r.PhotoURL,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		AddressText:     r.AddressText,
		Status:          r.Status,
		AdminNote:       r.AdminNote,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		FishReference:   r.FishReference,
	}
	if r.User != nil {
		pr.User = &PublicUser{ID: r.User.ID, Name: r.User.Name, AvatarURL: r.User.AvatarURL}
	}
	return pr
}

func NewPublicReports(reports []models.Report) []PublicReport {
	out := make([]PublicReport, len(reports))
	for i := range reports {
		out[i] = NewPublicReport(&reports[i])
	}
	return out
}
