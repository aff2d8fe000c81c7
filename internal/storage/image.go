package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

var (
	errImageTooLarge = apperror.Validation("image must be at most 5MB")
	errImageType     = apperror.Validation("image must be a jpg, jpeg or png file")
)

// Image is an upload that passed size and type checks.
type Image struct {
	Ext         string
	ContentType string
	Data        []byte
}

// OpenImage reads and validates a multipart image. The extension and the
// sniffed content must both be jpg/jpeg/png.
func OpenImage(fh *multipart.FileHeader) (*Image, error) {
	if fh.Size > MaxImageSize {
		return nil, errImageTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	want, ok := allowedImageTypes[ext]
	if !ok {
		return nil, errImageType
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperror.Internal("failed to open upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return nil, apperror.Internal("failed to read upload", err)
	}
	if len(data) > MaxImageSize {
		return nil, errImageTooLarge
	}

	if mt := mimetype.Detect(data); !mt.Is(want) {
		return nil, errImageType.WithMeta("detected", mt.String())
	}
	return &Image{Ext: ext, ContentType: want, Data: data}, nil
}

func objectKey(folder, name string) string {
	return fmt.Sprintf("%s/%s", strings.Trim(folder, "/"), name)
}
