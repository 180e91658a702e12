package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"movie-catalog/internal/config"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// MovieInput carries the writable movie fields. Nil fields are "not
// supplied": create rejects a nil Name or ReleaseYear, update leaves the
// stored value alone. Rating is the exception: when RatingSet is true a nil
// Rating clears the stored rating.
type MovieInput struct {
	ID          *uint    `json:"id" example:"1"`
	Name        *string  `json:"name" validate:"omitnil,min=1,max=100" example:"Inception"`
	ReleaseYear *int     `json:"release_year" validate:"omitnil,min=1800,max=9999" example:"2010"`
	Rating      *float64 `json:"rating" validate:"omitnil,min=0,max=10" example:"8.8"`
	RatingSet   bool     `json:"-"`
}

// UnmarshalJSON records whether the rating key was present, so an explicit
// "rating": null can be told apart from an omitted rating.
func (in *MovieInput) UnmarshalJSON(data []byte) error {
	type plain MovieInput
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, decoded.RatingSet = keys["rating"]

	*in = MovieInput(decoded)
	return nil
}

type MovieService interface {
	ListMovies(ctx context.Context, filter repository.MovieFilter, page, perPage int) ([]models.Movie, error)
	GetMovie(ctx context.Context, id uint) (*models.Movie, error)
	// UpsertMovie updates the movie named by input.ID, or creates a new one
	// when input.ID is nil or zero.
	UpsertMovie(ctx context.Context, input MovieInput) (*models.Movie, error)
	CreateMovie(ctx context.Context, input MovieInput) (*models.Movie, error)
	UpdateMovie(ctx context.Context, id uint, input MovieInput) (*models.Movie, error)
	DeleteMovie(ctx context.Context, id uint) error
	PresignPoster(ctx context.Context, id uint, filename string) (*PresignedUpload, error)
}

// PosterStorage keeps poster images for movies in object storage.
type PosterStorage interface {
	PresignPosterUpload(ctx context.Context, movieID uint, filename string) (*PresignedUpload, error)
	RemovePosters(ctx context.Context, movieID uint) error
}

type movieService struct {
	repo     repository.MovieRepository
	validate *validator.Validate
	catalog  config.CatalogConfig
	logger   *logrus.Logger
	posters  PosterStorage
}

func NewMovieService(repo repository.MovieRepository, validate *validator.Validate, cfg *config.Config, logger *logrus.Logger) MovieService {
	return &movieService{
		repo:     repo,
		validate: validate,
		catalog:  cfg.Catalog,
		logger:   logger,
	}
}

func (s *movieService) SetPosterStorage(posters PosterStorage) {
	s.posters = posters
}

func (s *movieService) ListMovies(ctx context.Context, filter repository.MovieFilter, page, perPage int) ([]models.Movie, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = s.catalog.DefaultPerPage
	}
	if perPage > s.catalog.MaxPerPage {
		perPage = s.catalog.MaxPerPage
	}

	movies, err := s.repo.FindAll(ctx, filter, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

func (s *movieService) GetMovie(ctx context.Context, id uint) (*models.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, movieError(err, id)
	}
	return movie, nil
}

func (s *movieService) UpsertMovie(ctx context.Context, input MovieInput) (*models.Movie, error) {
	if input.ID != nil && *input.ID != 0 {
		return s.UpdateMovie(ctx, *input.ID, input)
	}
	return s.CreateMovie(ctx, input)
}

func (s *movieService) CreateMovie(ctx context.Context, input MovieInput) (*models.Movie, error) {
	var missing []string
	if input.Name == nil {
		missing = append(missing, "name")
	}
	if input.ReleaseYear == nil {
		missing = append(missing, "release_year")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	movie := &models.Movie{
		Name:        *input.Name,
		ReleaseYear: *input.ReleaseYear,
		Rating:      input.Rating,
	}
	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"name":     movie.Name,
	}).Debug("Movie created")
	return movie, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id uint, input MovieInput) (*models.Movie, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, movieError(err, id)
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.ReleaseYear != nil {
		existing.ReleaseYear = *input.ReleaseYear
	}
	if input.Rating != nil || input.RatingSet {
		existing.Rating = input.Rating
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, movieError(err, id)
	}
	return existing, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return movieError(err, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return movieError(err, id)
	}

	// Posters are cleaned up best effort; the movie is already gone.
	if s.posters != nil {
		if err := s.posters.RemovePosters(ctx, id); err != nil {
			s.logger.WithError(err).WithField("movie_id", id).Warn("Failed to delete posters from MinIO")
		}
	}
	return nil
}

func (s *movieService) PresignPoster(ctx context.Context, id uint, filename string) (*PresignedUpload, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, missingFields("filename")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, movieError(err, id)
	}
	if s.posters == nil {
		return nil, ErrStorageDisabled
	}
	return s.posters.PresignPosterUpload(ctx, id, filename)
}

func movieError(err error, id uint) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: id %d", ErrMovieNotFound, id)
	}
	return err
}
