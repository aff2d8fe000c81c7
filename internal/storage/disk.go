package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
)

// DiskUploader writes images below dir, which is served at /uploads.
type DiskUploader struct {
	dir     string
	baseURL string
}

func NewDiskUploader(dir, baseURL string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskUploader{dir: dir, baseURL: baseURL}, nil
}

func (u *DiskUploader) Upload(ctx context.Context, folder string, img *Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := objectKey(folder, newObjectName(img))
	path := filepath.Join(u.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", apperror.Internal("failed to store upload", err)
	}
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return "", apperror.Internal("failed to store upload", err)
	}
	return u.baseURL + "/uploads/" + key, nil
}
