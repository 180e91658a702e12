package handlers

import (
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UploadHandler struct {
	movieService services.MovieService
	logger       *logrus.Logger
}

func NewUploadHandler(movieService services.MovieService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		movieService: movieService,
		logger:       logger,
	}
}

// GetPosterPresignedURL godoc
// @Summary Get presigned URL for a poster upload
// @Description Generate a presigned PUT URL for uploading a movie poster to MinIO/S3
// @Tags upload
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param filename query string true "Filename"
// @Success 200 {object} services.PresignedUpload "Presigned URL generated"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Failure 503 {object} utils.StandardResponse "Poster storage is not configured"
// @Router /movies/{id}/poster/presign [get]
func (h *UploadHandler) GetPosterPresignedURL(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}

	upload, err := h.movieService.PresignPoster(c.Context(), id, filename)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to generate presigned URL")
	}

	return c.JSON(upload)
}
