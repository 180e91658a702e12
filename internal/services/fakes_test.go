package services

import (
	"context"
	"errors"
	"io"
	"sort"

	"movie-catalog/internal/config"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig() *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{ListingMode: "strict", DefaultPerPage: 10, MaxPerPage: 100},
	}
}

type listCall struct {
	filter  repository.MovieFilter
	page    int
	perPage int
}

type fakeMovieRepo struct {
	movies  map[uint]models.Movie
	nextID  uint
	lists   []listCall
	failErr error
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: map[uint]models.Movie{}, nextID: 1}
}

func (r *fakeMovieRepo) Create(_ context.Context, movie *models.Movie) error {
	if r.failErr != nil {
		return r.failErr
	}
	movie.ID = r.nextID
	r.nextID++
	r.movies[movie.ID] = *movie
	return nil
}

func (r *fakeMovieRepo) Update(_ context.Context, movie *models.Movie) error {
	if _, ok := r.movies[movie.ID]; !ok {
		return repository.ErrNotFound
	}
	r.movies[movie.ID] = *movie
	return nil
}

func (r *fakeMovieRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.movies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.movies, id)
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uint) (*models.Movie, error) {
	m, ok := r.movies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *fakeMovieRepo) FindAll(_ context.Context, filter repository.MovieFilter, page, perPage int) ([]models.Movie, error) {
	r.lists = append(r.lists, listCall{filter: filter, page: page, perPage: perPage})
	if r.failErr != nil {
		return nil, r.failErr
	}
	ids := make([]int, 0, len(r.movies))
	for id := range r.movies {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	var out []models.Movie
	for i, id := range ids {
		if i >= (page-1)*perPage && i < page*perPage {
			out = append(out, r.movies[uint(id)])
		}
	}
	return out, nil
}

type entityKey struct {
	kind models.Kind
	id   uint
}

type fakeEntityRepo struct {
	entities map[entityKey]models.Entity
	links    map[entityKey]map[uint]bool
	nextID   uint
	linkErr  error
}

func newFakeEntityRepo() *fakeEntityRepo {
	return &fakeEntityRepo{
		entities: map[entityKey]models.Entity{},
		links:    map[entityKey]map[uint]bool{},
		nextID:   1,
	}
}

func (r *fakeEntityRepo) Create(_ context.Context, kind models.Kind, entity *models.Entity) error {
	entity.ID = r.nextID
	r.nextID++
	r.entities[entityKey{kind, entity.ID}] = *entity
	return nil
}

func (r *fakeEntityRepo) FindByID(_ context.Context, kind models.Kind, id uint) (*models.Entity, error) {
	e, ok := r.entities[entityKey{kind, id}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEntityRepo) DeleteUnreferenced(_ context.Context, kind models.Kind, id uint) error {
	key := entityKey{kind, id}
	if _, ok := r.entities[key]; !ok {
		return repository.ErrNotFound
	}
	if len(r.links[key]) > 0 {
		return repository.ErrInUse
	}
	delete(r.entities, key)
	return nil
}

func (r *fakeEntityRepo) FindMovies(_ context.Context, kind models.Kind, id uint) ([]models.Movie, error) {
	var out []models.Movie
	for movieID := range r.links[entityKey{kind, id}] {
		out = append(out, models.Movie{ID: movieID})
	}
	return out, nil
}

func (r *fakeEntityRepo) Link(_ context.Context, kind models.Kind, movieID, id uint) error {
	if r.linkErr != nil {
		return r.linkErr
	}
	key := entityKey{kind, id}
	if r.links[key] == nil {
		r.links[key] = map[uint]bool{}
	}
	r.links[key][movieID] = true
	return nil
}

func (r *fakeEntityRepo) Unlink(_ context.Context, kind models.Kind, movieID, id uint) error {
	delete(r.links[entityKey{kind, id}], movieID)
	return nil
}

type fakePosterStorage struct {
	presigned []uint
	removed   []uint
	removeErr error
}

func (p *fakePosterStorage) PresignPosterUpload(_ context.Context, movieID uint, filename string) (*PresignedUpload, error) {
	p.presigned = append(p.presigned, movieID)
	return &PresignedUpload{Object: "movies/" + filename}, nil
}

func (p *fakePosterStorage) RemovePosters(_ context.Context, movieID uint) error {
	p.removed = append(p.removed, movieID)
	return p.removeErr
}

var errBoom = errors.New("boom")

func ptr[T any](v T) *T {
	return &v
}
