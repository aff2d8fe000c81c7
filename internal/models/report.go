package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	StatusPending  ReportStatus = "PENDING"
	StatusApproved ReportStatus = "APPROVED"
	StatusRejected ReportStatus = "REJECTED"
	StatusSolved   ReportStatus = "SOLVED"
)

// ReportStatuses lists every status in dashboard order.
var ReportStatuses = []ReportStatus{StatusPending, StatusApproved, StatusRejected, StatusSolved}

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusSolved:
		return true
	}
	return false
}

// Report is a hazard sighting. User and FishReference are only populated when
// preloaded by a read; they are never written through the report.
type Report struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	FishReferenceID *uuid.UUID     `gorm:"type:uuid;index" json:"fishReferenceId"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	PhotoURL        string         `gorm:"size:1024;not null" json:"photoUrl"`
	Latitude        float64        `gorm:"not null" json:"latitude"`
	Longitude       float64        `gorm:"not null" json:"longitude"`
	AddressText     string         `gorm:"size:500" json:"addressText"`
	Status          ReportStatus   `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	AdminNote       string         `gorm:"size:1000" json:"adminNote"`
	CreatedAt       time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FishReference   *FishReference `gorm:"foreignKey:FishReferenceID" json:"fishReference,omitempty"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
