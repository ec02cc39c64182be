package server

import (
	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxImageSizeBytes = 5 << 20 // 5 MiB

// ImageUploadResponse is the API response after uploading an image. Posts
// reference the returned key in their image field.
type ImageUploadResponse struct {
	Key string `json:"key"`
}

// UploadImage handles POST /api/images
func (s *Server) UploadImage(c *fiber.Ctx) error {
	if s.imageStore == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Image storage is not configured"))
	}

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}
	if file.Size > maxImageSizeBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image exceeds the 5 MiB limit"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	key, err := s.imageStore.Put(c.UserContext(), file.Filename, src, file.Size)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(ImageUploadResponse{Key: key})
}
