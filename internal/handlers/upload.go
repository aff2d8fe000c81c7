package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// formImage stores the image sent in a multipart field and returns its
// public URL. It returns "" when the request carries no such file.
func formImage(c *fiber.Ctx, up storage.Uploader, field, folder string) (string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return "", nil
	}
	files := form.File[field]
	if len(files) == 0 {
		return "", nil
	}
	img, err := storage.OpenImage(files[0])
	if err != nil {
		return "", err
	}
	return up.Upload(c.UserContext(), folder, img)
}
