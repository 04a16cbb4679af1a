package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/example/dailycare/internal/services"
)

const maxUploadBytes = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadHandler forwards admin image uploads to the configured host.
type UploadHandler struct {
	uploader services.ImageUploader
}

// NewUploadHandler constructs UploadHandler.
func NewUploadHandler(uploader services.ImageUploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// UploadImage accepts a multipart image and returns its hosted URL.
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	if !allowedImageTypes[fileHeader.Header.Get("Content-Type")] {
		return fiber.NewError(fiber.StatusBadRequest, "invalid file type, allowed: JPEG, PNG, WebP, GIF")
	}
	if fileHeader.Size > maxUploadBytes {
		return fiber.NewError(fiber.StatusBadRequest, "file too large, max size: 5MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	url, err := h.uploader.Upload(fileHeader.Filename, data)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "upload failed")
	}

	return c.JSON(fiber.Map{"success": true, "url": url})
}
