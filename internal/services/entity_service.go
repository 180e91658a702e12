package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// EntityService manages actors, directors, technicians and genres.
type EntityService interface {
	CreateEntity(ctx context.Context, kind models.Kind, name string) (*models.Entity, error)
	GetEntity(ctx context.Context, kind models.Kind, id uint) (*models.Entity, error)
	ListEntityMovies(ctx context.Context, kind models.Kind, id uint) ([]models.Movie, error)
	// DeleteEntity refuses with ErrEntityInUse while the entity is linked to
	// any movie.
	DeleteEntity(ctx context.Context, kind models.Kind, id uint) error
	LinkMovie(ctx context.Context, kind models.Kind, movieID, id uint) error
	UnlinkMovie(ctx context.Context, kind models.Kind, movieID, id uint) error
}

type entityService struct {
	repo      repository.EntityRepository
	movieRepo repository.MovieRepository
	validate  *validator.Validate
	logger    *logrus.Logger
}

func NewEntityService(repo repository.EntityRepository, movieRepo repository.MovieRepository, validate *validator.Validate, logger *logrus.Logger) EntityService {
	return &entityService{
		repo:      repo,
		movieRepo: movieRepo,
		validate:  validate,
		logger:    logger,
	}
}

func (s *entityService) CreateEntity(ctx context.Context, kind models.Kind, name string) (*models.Entity, error) {
	name = strings.TrimSpace(name)
	rules := fmt.Sprintf("required,max=%d", kind.MaxNameLength())
	if err := s.validate.Var(name, rules); err != nil {
		return nil, fieldValidationError("name", err)
	}

	entity := &models.Entity{Name: name}
	if err := s.repo.Create(ctx, kind, entity); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}

	s.logger.WithFields(logrus.Fields{
		"kind": kind,
		"id":   entity.ID,
	}).Debug("Entity created")
	return entity, nil
}

func (s *entityService) GetEntity(ctx context.Context, kind models.Kind, id uint) (*models.Entity, error) {
	entity, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, entityError(err, kind, id)
	}
	return entity, nil
}

func (s *entityService) ListEntityMovies(ctx context.Context, kind models.Kind, id uint) ([]models.Movie, error) {
	if _, err := s.GetEntity(ctx, kind, id); err != nil {
		return nil, err
	}

	movies, err := s.repo.FindMovies(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies for %s %d: %w", kind, id, err)
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

func (s *entityService) DeleteEntity(ctx context.Context, kind models.Kind, id uint) error {
	if err := s.repo.DeleteUnreferenced(ctx, kind, id); err != nil {
		return entityError(err, kind, id)
	}

	s.logger.WithFields(logrus.Fields{
		"kind": kind,
		"id":   id,
	}).Info("Entity deleted")
	return nil
}

func (s *entityService) LinkMovie(ctx context.Context, kind models.Kind, movieID, id uint) error {
	if err := s.checkPair(ctx, kind, movieID, id); err != nil {
		return err
	}
	if err := s.repo.Link(ctx, kind, movieID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Either side was deleted after checkPair.
			return entityError(err, kind, id)
		}
		return fmt.Errorf("failed to link movie %d to %s %d: %w", movieID, kind, id, err)
	}
	return nil
}

func (s *entityService) UnlinkMovie(ctx context.Context, kind models.Kind, movieID, id uint) error {
	if err := s.checkPair(ctx, kind, movieID, id); err != nil {
		return err
	}
	if err := s.repo.Unlink(ctx, kind, movieID, id); err != nil {
		return fmt.Errorf("failed to unlink movie %d from %s %d: %w", movieID, kind, id, err)
	}
	return nil
}

func (s *entityService) checkPair(ctx context.Context, kind models.Kind, movieID, id uint) error {
	if _, err := s.movieRepo.FindByID(ctx, movieID); err != nil {
		return movieError(err, movieID)
	}
	_, err := s.GetEntity(ctx, kind, id)
	return err
}

func entityError(err error, kind models.Kind, id uint) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s %d", ErrEntityNotFound, kind, id)
	case errors.Is(err, repository.ErrInUse):
		return fmt.Errorf("%w: %s %d", ErrEntityInUse, kind, id)
	}
	return err
}
