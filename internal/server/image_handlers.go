package server

import (
	"io"
	"strings"

	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/images (protected).
// The accepted image is re-encoded server-side; the returned URL is what
// clients put into a post's image field.
// @Summary Upload a post image
// @Tags images
// @Accept mpfd
// @Produce json
// @Param image formData file true "Image file (jpeg/png/gif/webp, max 10MB)"
// @Success 201 {object} service.UploadedImage
// @Failure 400 {object} models.ErrorResponse
// @Router /images [post]
func (s *Server) UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	uploaded, err := s.imageService.Upload(c.UserContext(), service.UploadImageInput{
		UserID:      userID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(uploaded)
}

// ServeImage handles GET /media/i/:hash/:file (public).
// Only the two canonical names are served; anything else is a 404 without
// touching the filesystem.
func (s *Server) ServeImage(c *fiber.Ctx) error {
	hash := strings.TrimSpace(c.Params("hash"))
	name := c.Params("file")

	variant := ""
	switch name {
	case "master.jpg":
	case "master.webp":
		variant = "webp"
	default:
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Image", hash))
	}

	path, err := s.imageService.ResolveForServing(hash, variant)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.SendFile(path)
}
