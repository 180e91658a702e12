package routes

import (
	"movie-catalog/internal/handlers"
	"movie-catalog/internal/models"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, movieHandler *handlers.MovieHandler, entityHandler *handlers.EntityHandler, uploadHandler *handlers.UploadHandler) {
	// Movie routes - CRUD operations
	movies := app.Group("/movies")
	{
		movies.Get("/", movieHandler.GetAllMovies)
		movies.Get("/:id", movieHandler.GetMovieByID)
		movies.Post("/", movieHandler.UpsertMovie)
		movies.Put("/:id", movieHandler.UpdateMovie)
		movies.Delete("/:id", movieHandler.DeleteMovie)
		movies.Get("/:id/poster/presign", uploadHandler.GetPosterPresignedURL)
	}

	// Associated entity routes, one group per kind
	for _, kind := range models.Kinds {
		group := app.Group("/" + kind.Plural())
		{
			group.Post("/", entityHandler.Create(kind))
			group.Get("/:id", entityHandler.Get(kind))
			group.Get("/:id/movies", entityHandler.Movies(kind))
			group.Post("/:id", entityHandler.Delete(kind))
			group.Delete("/:id", entityHandler.Delete(kind))
		}

		movies.Put("/:movieId/"+kind.Plural()+"/:id", entityHandler.Link(kind))
		movies.Delete("/:movieId/"+kind.Plural()+"/:id", entityHandler.Unlink(kind))
	}
}
