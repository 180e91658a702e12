package handlers

import (
	"errors"

	"movie-catalog/internal/models"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// EntityHandler serves actors, directors, technicians and genres. Each
// method returns the fiber handler for a single kind.
type EntityHandler struct {
	service services.EntityService
	logger  *logrus.Logger
}

func NewEntityHandler(service services.EntityService, logger *logrus.Logger) *EntityHandler {
	return &EntityHandler{
		service: service,
		logger:  logger,
	}
}

// Create godoc
// @Summary Create an associated entity
// @Description Create an actor, director, technician or genre
// @Tags entities
// @Accept json
// @Produce json
// @Param kind path string true "Entity kind" Enums(actors, directors, technicians, genres)
// @Param entity body EntityRequest true "Entity request object"
// @Success 201 {object} EntityResponse "Entity created"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /{kind} [post]
func (h *EntityHandler) Create(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req EntityRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		entity, err := h.service.CreateEntity(c.Context(), kind, req.Name)
		if err != nil {
			return h.fail(c, kind, err, "Failed to create "+string(kind))
		}

		return c.Status(fiber.StatusCreated).JSON(EntityResponse{ID: entity.ID, Name: entity.Name})
	}
}

// Get godoc
// @Summary Get an associated entity
// @Tags entities
// @Produce json
// @Param kind path string true "Entity kind" Enums(actors, directors, technicians, genres)
// @Param id path int true "Entity ID"
// @Success 200 {object} EntityResponse "Entity details"
// @Failure 400 {object} utils.StandardResponse "Invalid ID"
// @Failure 404 {object} utils.StandardResponse "Entity not found"
// @Router /{kind}/{id} [get]
func (h *EntityHandler) Get(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid "+string(kind)+" ID")
		}

		entity, err := h.service.GetEntity(c.Context(), kind, id)
		if err != nil {
			return h.fail(c, kind, err, "Failed to retrieve "+string(kind))
		}

		return c.JSON(EntityResponse{ID: entity.ID, Name: entity.Name})
	}
}

// Movies godoc
// @Summary List the movies of an associated entity
// @Tags entities
// @Produce json
// @Param kind path string true "Entity kind" Enums(actors, directors, technicians, genres)
// @Param id path int true "Entity ID"
// @Success 200 {array} MovieResponse "Linked movies"
// @Failure 400 {object} utils.StandardResponse "Invalid ID"
// @Failure 404 {object} utils.StandardResponse "Entity not found"
// @Router /{kind}/{id}/movies [get]
func (h *EntityHandler) Movies(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid "+string(kind)+" ID")
		}

		movies, err := h.service.ListEntityMovies(c.Context(), kind, id)
		if err != nil {
			return h.fail(c, kind, err, "Failed to retrieve movies")
		}

		return c.JSON(toMovieResponses(movies))
	}
}

// Delete godoc
// @Summary Delete an associated entity
// @Description The entity is only deleted when no movie references it
// @Tags entities
// @Produce json
// @Param kind path string true "Entity kind" Enums(actors, directors, technicians, genres)
// @Param id path int true "Entity ID"
// @Success 200 {object} utils.MessageBody "Entity deleted"
// @Failure 400 {object} utils.StandardResponse "Entity still associated with movies"
// @Failure 404 {object} utils.StandardResponse "Entity not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /{kind}/{id} [post]
// @Router /{kind}/{id} [delete]
func (h *EntityHandler) Delete(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid "+string(kind)+" ID")
		}

		if err := h.service.DeleteEntity(c.Context(), kind, id); err != nil {
			return h.fail(c, kind, err, "Failed to delete "+string(kind))
		}

		h.logger.WithFields(logrus.Fields{
			"kind": kind,
			"id":   id,
		}).Info("Entity deleted")
		return utils.MessageResponse(c, kind.Label()+" deleted successfully")
	}
}

// Link godoc
// @Summary Link an entity to a movie
// @Tags entities
// @Produce json
// @Param movieId path int true "Movie ID"
// @Param kind path string true "Entity kind" Enums(actors, directors, technicians, genres)
// @Param id path int true "Entity ID"
// @Success 200 {object} utils.MessageBody "Linked"
// @Failure 404 {object} utils.StandardResponse "Movie or entity not found"
// @Router /movies/{movieId}/{kind}/{id} [put]
func (h *EntityHandler) Link(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		movieID, id, err := parsePair(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ID")
		}

		if err := h.service.LinkMovie(c.Context(), kind, movieID, id); err != nil {
			return h.fail(c, kind, err, "Failed to link "+string(kind))
		}

		return utils.MessageResponse(c, kind.Label()+" linked to movie")
	}
}

// Unlink godoc
// @Summary Unlink an entity from a movie
// @Tags entities
// @Produce json
// @Param movieId path int true "Movie ID"
// @Param kind path string true "Entity kind" Enums(actors, directors, technicians, genres)
// @Param id path int true "Entity ID"
// @Success 200 {object} utils.MessageBody "Unlinked"
// @Failure 404 {object} utils.StandardResponse "Movie or entity not found"
// @Router /movies/{movieId}/{kind}/{id} [delete]
func (h *EntityHandler) Unlink(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		movieID, id, err := parsePair(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ID")
		}

		if err := h.service.UnlinkMovie(c.Context(), kind, movieID, id); err != nil {
			return h.fail(c, kind, err, "Failed to unlink "+string(kind))
		}

		return utils.MessageResponse(c, kind.Label()+" unlinked from movie")
	}
}

// fail words not-found and in-use errors for the kind and hands the rest
// to respondError.
func (h *EntityHandler) fail(c *fiber.Ctx, kind models.Kind, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrEntityNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, kind.Label()+" not found")
	case errors.Is(err, services.ErrEntityInUse):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, inUseMessage(kind))
	}
	return respondError(c, h.logger, err, fallback)
}

func inUseMessage(kind models.Kind) string {
	pronoun := "they are"
	if kind == models.KindGenre {
		pronoun = "it is"
	}
	return kind.Label() + " cannot be deleted because " + pronoun + " associated with movies."
}

func parsePair(c *fiber.Ctx) (uint, uint, error) {
	movieID, err := parseID(c, "movieId")
	if err != nil {
		return 0, 0, err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return movieID, id, nil
}
