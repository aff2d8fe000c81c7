package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article has no UpdatedAt; articles are not edited once published.
type Article struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"not null;size:255" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ThumbnailURL string    `gorm:"size:1024;not null" json:"thumbnailUrl"`
	SourceURL    string    `gorm:"size:1024" json:"sourceUrl,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
