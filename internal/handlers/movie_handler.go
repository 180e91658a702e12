package handlers

import (
	"movie-catalog/internal/repository"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovieHandler struct {
	service services.MovieService
	logger  *logrus.Logger
}

func NewMovieHandler(service services.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllMovies godoc
// @Summary List movies
// @Description List movies, optionally filtered by associated actor, director, technician or genre.
// @Description In strict listing mode only movies with at least one actor, director and technician are returned.
// @Tags movies
// @Accept json
// @Produce json
// @Param actor query int false "Actor ID"
// @Param director query int false "Director ID"
// @Param technician query int false "Technician ID"
// @Param genre query int false "Genre ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {array} MovieResponse "Page of movies"
// @Failure 400 {object} utils.StandardResponse "Invalid query parameter"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [get]
func (h *MovieHandler) GetAllMovies(c *fiber.Ctx) error {
	ctx := c.Context()

	var filter repository.MovieFilter
	targets := map[string]*uint{
		"actor":      &filter.ActorID,
		"director":   &filter.DirectorID,
		"technician": &filter.TechnicianID,
		"genre":      &filter.GenreID,
	}
	for key, target := range targets {
		id, err := queryID(c, key)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid "+key+" ID")
		}
		*target = id
	}

	page, err := queryInt(c, "page", 1)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid page")
	}
	perPage, err := queryInt(c, "per_page", 0)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid per_page")
	}

	movies, err := h.service.ListMovies(ctx, filter, page, perPage)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve movies")
	}

	return c.JSON(toMovieResponses(movies))
}

// GetMovieByID godoc
// @Summary Get movie by ID
// @Description Get a single movie by its ID
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} MovieResponse "Movie details"
// @Failure 400 {object} utils.StandardResponse "Invalid movie ID"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovieByID(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	movie, err := h.service.GetMovie(ctx, id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve movie")
	}

	return c.JSON(toMovieResponse(movie))
}

// UpsertMovie godoc
// @Summary Create or update a movie
// @Description Without an id (or with id 0) a new movie is created and name and release_year are required.
// @Description With an id the existing movie is updated and only the supplied fields change.
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieRequest true "Movie request object"
// @Success 200 {object} MovieResponse "Resulting movie"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [post]
func (h *MovieHandler) UpsertMovie(c *fiber.Ctx) error {
	ctx := c.Context()

	var req MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	movie, err := h.service.UpsertMovie(ctx, req.toInput())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to save movie")
	}

	return c.JSON(toMovieResponse(movie))
}

// UpdateMovie godoc
// @Summary Update a movie
// @Description Update the supplied fields of an existing movie; the id in the body is ignored
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body MovieRequest true "Movie request object"
// @Success 200 {object} MovieResponse "Movie updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	var req MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	movie, err := h.service.UpdateMovie(ctx, id, req.toInput())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update movie")
	}

	return c.JSON(toMovieResponse(movie))
}

// DeleteMovie godoc
// @Summary Delete a movie
// @Description Delete a movie and all of its genre, actor, director and technician links
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.MessageBody "Movie deleted successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid movie ID"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	if err := h.service.DeleteMovie(ctx, id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete movie")
	}

	h.logger.WithField("movie_id", id).Info("Movie deleted")
	return utils.MessageResponse(c, "Movie deleted successfully")
}

