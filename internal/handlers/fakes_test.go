package handlers

import (
	"context"
	"io"

	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type fakeMovieService struct {
	movies     map[uint]models.Movie
	lastFilter repository.MovieFilter
	lastPage   int
	lastPer    int
	lastInput  services.MovieInput
	err        error
	storage    bool
}

func (s *fakeMovieService) ListMovies(_ context.Context, filter repository.MovieFilter, page, perPage int) ([]models.Movie, error) {
	s.lastFilter, s.lastPage, s.lastPer = filter, page, perPage
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Movie
	for _, m := range s.movies {
		out = append(out, m)
	}
	return out, nil
}

func (s *fakeMovieService) GetMovie(_ context.Context, id uint) (*models.Movie, error) {
	m, ok := s.movies[id]
	if !ok {
		return nil, services.ErrMovieNotFound
	}
	return &m, nil
}

func (s *fakeMovieService) UpsertMovie(ctx context.Context, input services.MovieInput) (*models.Movie, error) {
	if input.ID != nil && *input.ID != 0 {
		return s.UpdateMovie(ctx, *input.ID, input)
	}
	return s.CreateMovie(ctx, input)
}

func (s *fakeMovieService) CreateMovie(_ context.Context, input services.MovieInput) (*models.Movie, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	if input.Name == nil || input.ReleaseYear == nil {
		return nil, services.ErrValidation
	}
	m := models.Movie{ID: uint(len(s.movies) + 1), Name: *input.Name, ReleaseYear: *input.ReleaseYear, Rating: input.Rating}
	s.movies[m.ID] = m
	return &m, nil
}

func (s *fakeMovieService) UpdateMovie(_ context.Context, id uint, input services.MovieInput) (*models.Movie, error) {
	s.lastInput = input
	m, ok := s.movies[id]
	if !ok {
		return nil, services.ErrMovieNotFound
	}
	if input.Name != nil {
		m.Name = *input.Name
	}
	if input.ReleaseYear != nil {
		m.ReleaseYear = *input.ReleaseYear
	}
	if input.Rating != nil || input.RatingSet {
		m.Rating = input.Rating
	}
	s.movies[id] = m
	return &m, nil
}

func (s *fakeMovieService) DeleteMovie(_ context.Context, id uint) error {
	if _, ok := s.movies[id]; !ok {
		return services.ErrMovieNotFound
	}
	delete(s.movies, id)
	return nil
}

func (s *fakeMovieService) PresignPoster(_ context.Context, id uint, filename string) (*services.PresignedUpload, error) {
	if _, ok := s.movies[id]; !ok {
		return nil, services.ErrMovieNotFound
	}
	if !s.storage {
		return nil, services.ErrStorageDisabled
	}
	return &services.PresignedUpload{
		PresignedURL: "http://minio.local/posters/movies/1/" + filename + "?X-Amz-Signature=abc",
		Object:       "movies/1/" + filename,
	}, nil
}

type fakeEntityService struct {
	entities map[models.Kind]map[uint]string
	linked   map[models.Kind]map[uint][]uint
	movies   *fakeMovieService
	err      error
}

func (s *fakeEntityService) CreateEntity(_ context.Context, kind models.Kind, name string) (*models.Entity, error) {
	if name == "" {
		return nil, services.ErrValidation
	}
	if s.entities[kind] == nil {
		s.entities[kind] = map[uint]string{}
	}
	id := uint(len(s.entities[kind]) + 1)
	s.entities[kind][id] = name
	return &models.Entity{ID: id, Name: name}, nil
}

func (s *fakeEntityService) GetEntity(_ context.Context, kind models.Kind, id uint) (*models.Entity, error) {
	name, ok := s.entities[kind][id]
	if !ok {
		return nil, services.ErrEntityNotFound
	}
	return &models.Entity{ID: id, Name: name}, nil
}

func (s *fakeEntityService) ListEntityMovies(ctx context.Context, kind models.Kind, id uint) ([]models.Movie, error) {
	if _, err := s.GetEntity(ctx, kind, id); err != nil {
		return nil, err
	}
	var out []models.Movie
	for _, movieID := range s.linked[kind][id] {
		out = append(out, s.movies.movies[movieID])
	}
	return out, nil
}

func (s *fakeEntityService) DeleteEntity(ctx context.Context, kind models.Kind, id uint) error {
	if s.err != nil {
		return s.err
	}
	if _, err := s.GetEntity(ctx, kind, id); err != nil {
		return err
	}
	if len(s.linked[kind][id]) > 0 {
		return services.ErrEntityInUse
	}
	delete(s.entities[kind], id)
	return nil
}

func (s *fakeEntityService) LinkMovie(ctx context.Context, kind models.Kind, movieID, id uint) error {
	if _, ok := s.movies.movies[movieID]; !ok {
		return services.ErrMovieNotFound
	}
	if _, err := s.GetEntity(ctx, kind, id); err != nil {
		return err
	}
	if s.linked[kind] == nil {
		s.linked[kind] = map[uint][]uint{}
	}
	s.linked[kind][id] = append(s.linked[kind][id], movieID)
	return nil
}

func (s *fakeEntityService) UnlinkMovie(ctx context.Context, kind models.Kind, movieID, id uint) error {
	if _, ok := s.movies.movies[movieID]; !ok {
		return services.ErrMovieNotFound
	}
	if _, err := s.GetEntity(ctx, kind, id); err != nil {
		return err
	}
	delete(s.linked[kind], id)
	return nil
}

type testApp struct {
	app      *fiber.App
	movies   *fakeMovieService
	entities *fakeEntityService
}

// newTestApp registers the handlers the same way the routes package does.
func newTestApp() testApp {
	log := logrus.New()
	log.SetOutput(io.Discard)

	movies := &fakeMovieService{movies: map[uint]models.Movie{}}
	entities := &fakeEntityService{
		entities: map[models.Kind]map[uint]string{},
		linked:   map[models.Kind]map[uint][]uint{},
		movies:   movies,
	}

	mh := NewMovieHandler(movies, log)
	eh := NewEntityHandler(entities, log)
	uh := NewUploadHandler(movies, log)

	app := fiber.New()
	app.Get("/movies", mh.GetAllMovies)
	app.Get("/movies/:id", mh.GetMovieByID)
	app.Post("/movies", mh.UpsertMovie)
	app.Put("/movies/:id", mh.UpdateMovie)
	app.Delete("/movies/:id", mh.DeleteMovie)
	app.Get("/movies/:id/poster/presign", uh.GetPosterPresignedURL)
	for _, kind := range models.Kinds {
		app.Post("/"+kind.Plural(), eh.Create(kind))
		app.Get("/"+kind.Plural()+"/:id", eh.Get(kind))
		app.Get("/"+kind.Plural()+"/:id/movies", eh.Movies(kind))
		app.Post("/"+kind.Plural()+"/:id", eh.Delete(kind))
		app.Delete("/"+kind.Plural()+"/:id", eh.Delete(kind))
		app.Put("/movies/:movieId/"+kind.Plural()+"/:id", eh.Link(kind))
		app.Delete("/movies/:movieId/"+kind.Plural()+"/:id", eh.Unlink(kind))
	}

	return testApp{app: app, movies: movies, entities: entities}
}
