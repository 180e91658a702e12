package repository

import (
	"context"
	"fmt"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListingMode decides which movies are eligible for a listing.
type ListingMode string

const (
	// ListingStrict inner-joins the actor, director and technician join
	// tables on every listing, so a movie missing any of the three is never
	// listed, with or without filters.
	ListingStrict ListingMode = "strict"
	// ListingLenient lists every movie and turns each supplied filter into
	// an EXISTS predicate.
	ListingLenient ListingMode = "lenient"
)

func ParseListingMode(s string) (ListingMode, error) {
	switch ListingMode(s) {
	case ListingStrict, "":
		return ListingStrict, nil
	case ListingLenient:
		return ListingLenient, nil
	}
	return "", fmt.Errorf("unknown listing mode %q", s)
}

// strictKinds are joined on every strict listing.
var strictKinds = []models.Kind{models.KindActor, models.KindDirector, models.KindTechnician}

// MovieFilter narrows a listing to movies associated with the given
// entities. A zero ID means no filter for that kind.
type MovieFilter struct {
	ActorID      uint
	DirectorID   uint
	TechnicianID uint
	GenreID      uint
}

// ID returns the filter value for kind.
func (f MovieFilter) ID(kind models.Kind) uint {
	switch kind {
	case models.KindActor:
		return f.ActorID
	case models.KindDirector:
		return f.DirectorID
	case models.KindTechnician:
		return f.TechnicianID
	case models.KindGenre:
		return f.GenreID
	}
	return 0
}

type MovieRepository interface {
	Create(ctx context.Context, movie *models.Movie) error
	Update(ctx context.Context, movie *models.Movie) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Movie, error)
	FindAll(ctx context.Context, filter MovieFilter, page, perPage int) ([]models.Movie, error)
}

type movieRepository struct {
	db      *database.Database
	timeout time.Duration
	mode    ListingMode
}

func NewMovieRepository(db *database.Database, mode ListingMode) MovieRepository {
	return &movieRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
		mode:    mode,
	}
}

func (r *movieRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Omit(clause.Associations).Create(movie).Error
}

// Update writes the scalar columns only; associations are managed through
// the entity repository.
func (r *movieRepository) Update(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Model(movie).
		Select("name", "release_year", "rating").
		Updates(map[string]interface{}{
			"name":         movie.Name,
			"release_year": movie.ReleaseYear,
			"rating":       movie.Rating,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the movie together with its rows in every join table.
func (r *movieRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, kind := range models.Kinds {
			if err := tx.Exec("DELETE FROM "+kind.JoinTable()+" WHERE movie_id = ?", id).Error; err != nil {
				return fmt.Errorf("clear %s: %w", kind.JoinTable(), err)
			}
		}

		res := tx.Delete(&models.Movie{}, id)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *movieRepository) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movie models.Movie
	if err := r.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter, page, perPage int) ([]models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.Movie{})
	if r.mode == ListingLenient {
		query = applyLenientFilter(query, filter)
	} else {
		query = applyStrictFilter(query, filter)
	}

	movies := make([]models.Movie, 0, perPage)
	err := query.
		Distinct("movie.id", "movie.name", "movie.release_year", "movie.rating").
		Order("movie.id").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func applyStrictFilter(query *gorm.DB, filter MovieFilter) *gorm.DB {
	for _, kind := range strictKinds {
		query = query.Joins(joinClause(kind))
	}
	if filter.GenreID != 0 {
		query = query.Joins(joinClause(models.KindGenre))
	}

	for _, kind := range models.Kinds {
		if id := filter.ID(kind); id != 0 {
			query = query.Where(kind.JoinTable()+"."+kind.ForeignKey()+" = ?", id)
		}
	}
	return query
}

func applyLenientFilter(query *gorm.DB, filter MovieFilter) *gorm.DB {
	for _, kind := range models.Kinds {
		if id := filter.ID(kind); id != 0 {
			query = query.Where(fmt.Sprintf(
				"EXISTS (SELECT 1 FROM %[1]s WHERE %[1]s.movie_id = movie.id AND %[1]s.%[2]s = ?)",
				kind.JoinTable(), kind.ForeignKey(),
			), id)
		}
	}
	return query
}

func joinClause(kind models.Kind) string {
	return fmt.Sprintf("JOIN %[1]s ON %[1]s.movie_id = movie.id", kind.JoinTable())
}
