package dto

import "github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"

type CreateFishRequest struct {
	Name           string             `json:"name" form:"name" validate:"required,max=255"`
	ScientificName string             `json:"scientificName" form:"scientificName" validate:"max=255"`
	Description    string             `json:"description" form:"description" validate:"required"`
	ImageURL       string             `json:"imageUrl" form:"imageUrl" validate:"required,max=1024"`
	DangerLevel    models.DangerLevel `json:"dangerLevel" form:"dangerLevel" validate:"required,oneof=LOW MEDIUM HIGH"`
}

type CreateArticleRequest struct {
	Title        string `json:"title" form:"title" validate:"required,max=255"`
	Content      string `json:"content" form:"content" validate:"required"`
	ThumbnailURL string `json:"thumbnailUrl" form:"thumbnailUrl" validate:"required,max=1024"`
	SourceURL    string `json:"sourceUrl" form:"sourceUrl" validate:"omitempty,url,max=1024"`
}
