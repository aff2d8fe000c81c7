package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DangerLevel string

const (
	DangerLow    DangerLevel = "LOW"
	DangerMedium DangerLevel = "MEDIUM"
	DangerHigh   DangerLevel = "HIGH"
)

func (d DangerLevel) Valid() bool {
	switch d {
	case DangerLow, DangerMedium, DangerHigh:
		return true
	}
	return false
}

// FishReference is read-mostly catalog data used to classify reports.
type FishReference struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string      `gorm:"not null;size:255;index" json:"name"`
	ScientificName string      `gorm:"size:255" json:"scientificName"`
	Description    string      `gorm:"type:text;not null" json:"description"`
	ImageURL       string      `gorm:"size:1024;not null" json:"imageUrl"`
	DangerLevel    DangerLevel `gorm:"size:10;not null" json:"dangerLevel"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (f *FishReference) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
