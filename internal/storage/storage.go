// Package storage turns uploaded images into public URLs, either through
// S3-compatible object storage or the local upload directory.
package storage

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/config"
	"github.com/google/uuid"
)

// Folders used for the different upload kinds.
const (
	FolderReports  = "reports"
	FolderAvatars  = "avatars"
	FolderFish     = "fish"
	FolderArticles = "articles"
)

// Uploader stores an image under folder and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, folder string, img *Image) (string, error)
}

// New picks S3 when a bucket is configured and the disk otherwise.
func New(ctx context.Context, cfg *config.Config) (Uploader, error) {
	if cfg.UsesS3() {
		slog.Info("uploads go to object storage", "bucket", cfg.S3Bucket, "endpoint", cfg.S3Endpoint)
		return NewS3Uploader(ctx, cfg)
	}
	slog.Info("uploads go to local disk", "dir", cfg.UploadDir)
	return NewDiskUploader(cfg.UploadDir, cfg.PublicBaseURL)
}

func newObjectName(img *Image) string {
	return uuid.NewString() + img.Ext
}
