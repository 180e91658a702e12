package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entityFixture struct {
	svc      EntityService
	repo     *fakeEntityRepo
	movies   *fakeMovieRepo
	movieSvc MovieService
}

func newEntityFixture() entityFixture {
	movies := newFakeMovieRepo()
	repo := newFakeEntityRepo()
	v := NewValidator()
	return entityFixture{
		svc:      NewEntityService(repo, movies, v, quietLogger()),
		repo:     repo,
		movies:   movies,
		movieSvc: NewMovieService(movies, v, testConfig(), quietLogger()),
	}
}

func TestCreateEntity(t *testing.T) {
	f := newEntityFixture()
	ctx := context.Background()

	actor, err := f.svc.CreateEntity(ctx, models.KindActor, "  Keanu Reeves ")
	require.NoError(t, err)
	assert.Equal(t, "Keanu Reeves", actor.Name)
	assert.NotZero(t, actor.ID)

	got, err := f.svc.GetEntity(ctx, models.KindActor, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, actor, got)

	_, err = f.svc.GetEntity(ctx, models.KindDirector, actor.ID)
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestCreateEntity_Validation(t *testing.T) {
	f := newEntityFixture()
	ctx := context.Background()

	_, err := f.svc.CreateEntity(ctx, models.KindActor, "   ")
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "name is required")

	_, err = f.svc.CreateEntity(ctx, models.KindGenre, strings.Repeat("g", 51))
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "name must be at most 50 characters")

	_, err = f.svc.CreateEntity(ctx, models.KindTechnician, strings.Repeat("t", 51))
	assert.NoError(t, err)

	_, err = f.svc.CreateEntity(ctx, models.KindTechnician, strings.Repeat("t", 101))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateEntity_NameLengthPerKind(t *testing.T) {
	f := newEntityFixture()
	ctx := context.Background()

	for _, kind := range models.Kinds {
		limit := kind.MaxNameLength()

		_, err := f.svc.CreateEntity(ctx, kind, strings.Repeat("n", limit))
		assert.NoError(t, err, kind)

		_, err = f.svc.CreateEntity(ctx, kind, strings.Repeat("n", limit+1))
		require.ErrorIs(t, err, ErrValidation, kind)
		assert.Contains(t, err.Error(), fmt.Sprintf("name must be at most %d characters", limit))
	}
}

func TestLinkMovie_RaceWithDelete(t *testing.T) {
	f := newEntityFixture()
	ctx := context.Background()

	movie, err := f.movieSvc.CreateMovie(ctx, MovieInput{Name: ptr("Speed"), ReleaseYear: ptr(1994)})
	require.NoError(t, err)
	actor, err := f.svc.CreateEntity(ctx, models.KindActor, "Keanu Reeves")
	require.NoError(t, err)

	f.repo.linkErr = repository.ErrNotFound
	err = f.svc.LinkMovie(ctx, models.KindActor, movie.ID, actor.ID)
	assert.ErrorIs(t, err, ErrEntityNotFound)
	assert.NotErrorIs(t, err, ErrEntityInUse)
}

func TestDeleteEntity_Guarded(t *testing.T) {
	f := newEntityFixture()
	ctx := context.Background()

	movie, err := f.movieSvc.CreateMovie(ctx, MovieInput{Name: ptr("Speed"), ReleaseYear: ptr(1994)})
	require.NoError(t, err)

	for _, kind := range models.Kinds {
		busy, err := f.svc.CreateEntity(ctx, kind, "busy")
		require.NoError(t, err)
		idle, err := f.svc.CreateEntity(ctx, kind, "idle")
		require.NoError(t, err)
		require.NoError(t, f.svc.LinkMovie(ctx, kind, movie.ID, busy.ID))

		err = f.svc.DeleteEntity(ctx, kind, busy.ID)
		assert.ErrorIs(t, err, ErrEntityInUse, kind)
		_, err = f.svc.GetEntity(ctx, kind, busy.ID)
		assert.NoError(t, err, "%s must survive a refused delete", kind)

		require.NoError(t, f.svc.DeleteEntity(ctx, kind, idle.ID))
		_, err = f.svc.GetEntity(ctx, kind, idle.ID)
		assert.ErrorIs(t, err, ErrEntityNotFound)

		assert.ErrorIs(t, f.svc.DeleteEntity(ctx, kind, 9999), ErrEntityNotFound)
	}
}

func TestLinkMovie(t *testing.T) {
	f := newEntityFixture()
	ctx := context.Background()

	movie, err := f.movieSvc.CreateMovie(ctx, MovieInput{Name: ptr("Speed"), ReleaseYear: ptr(1994)})
	require.NoError(t, err)
	actor, err := f.svc.CreateEntity(ctx, models.KindActor, "Keanu Reeves")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.LinkMovie(ctx, models.KindActor, 99, actor.ID), ErrMovieNotFound)
	assert.ErrorIs(t, f.svc.LinkMovie(ctx, models.KindActor, movie.ID, 99), ErrEntityNotFound)

	require.NoError(t, f.svc.LinkMovie(ctx, models.KindActor, movie.ID, actor.ID))
	require.NoError(t, f.svc.LinkMovie(ctx, models.KindActor, movie.ID, actor.ID))

	movies, err := f.svc.ListEntityMovies(ctx, models.KindActor, actor.ID)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, movie.ID, movies[0].ID)

	require.NoError(t, f.svc.UnlinkMovie(ctx, models.KindActor, movie.ID, actor.ID))
	movies, err = f.svc.ListEntityMovies(ctx, models.KindActor, actor.ID)
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)

	_, err = f.svc.ListEntityMovies(ctx, models.KindActor, 99)
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestPosterObjectName(t *testing.T) {
	id := uuid.MustParse("1a2b3c4d-0000-0000-0000-000000000000")

	assert.Equal(t, "movies/7/poster_1a2b3c4d.jpg", posterObjectName(7, "poster.JPG", id))
	assert.Equal(t, "movies/7/my_poster_v2_1a2b3c4d.png", posterObjectName(7, "../../my poster.v2.png", id))
	assert.Equal(t, "movies/12/poster_1a2b3c4d.jpg", posterObjectName(12, "日本.jpg", id))
}
