package repository

import (
	"context"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntityRepository stores actors, directors, technicians and genres and
// their links to movies. Every method takes the kind to operate on.
type EntityRepository interface {
	Create(ctx context.Context, kind models.Kind, entity *models.Entity) error
	FindByID(ctx context.Context, kind models.Kind, id uint) (*models.Entity, error)
	// DeleteUnreferenced deletes the entity unless it is linked to a movie,
	// in which case it returns ErrInUse and deletes nothing.
	DeleteUnreferenced(ctx context.Context, kind models.Kind, id uint) error
	FindMovies(ctx context.Context, kind models.Kind, id uint) ([]models.Movie, error)
	Link(ctx context.Context, kind models.Kind, movieID, id uint) error
	Unlink(ctx context.Context, kind models.Kind, movieID, id uint) error
}

type entityRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewEntityRepository(db *database.Database) EntityRepository {
	return &entityRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *entityRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *entityRepository) Create(ctx context.Context, kind models.Kind, entity *models.Entity) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Table(kind.Table()).Create(entity).Error
}

func (r *entityRepository) FindByID(ctx context.Context, kind models.Kind, id uint) (*models.Entity, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var entity models.Entity
	if err := r.db.WithContext(ctx).Table(kind.Table()).Where("id = ?", id).Take(&entity).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

func (r *entityRepository) DeleteUnreferenced(ctx context.Context, kind models.Kind, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the row so a concurrent link cannot slip in between the
		// count and the delete.
		var entity models.Entity
		err := tx.Table(kind.Table()).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			Take(&entity).Error
		if err != nil {
			return err
		}

		var linked int64
		if err := tx.Table(kind.JoinTable()).Where(kind.ForeignKey()+" = ?", id).Count(&linked).Error; err != nil {
			return err
		}
		if linked > 0 {
			return ErrInUse
		}

		return tx.Exec("DELETE FROM "+kind.Table()+" WHERE id = ?", id).Error
	})
	return translateError(err)
}

func (r *entityRepository) FindMovies(ctx context.Context, kind models.Kind, id uint) ([]models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	movies := make([]models.Movie, 0)
	err := r.db.WithContext(ctx).Model(&models.Movie{}).
		Joins(joinClause(kind)).
		Where(kind.JoinTable()+"."+kind.ForeignKey()+" = ?", id).
		Order("movie.id").
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// Link is idempotent: linking an already linked pair is a no-op. Linking a
// movie or entity that does not exist returns ErrNotFound.
func (r *entityRepository) Link(ctx context.Context, kind models.Kind, movieID, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Exec(
		"INSERT INTO "+kind.JoinTable()+" (movie_id, "+kind.ForeignKey()+") VALUES (?, ?) ON CONFLICT DO NOTHING",
		movieID, id,
	).Error
	return translateLinkError(err)
}

func (r *entityRepository) Unlink(ctx context.Context, kind models.Kind, movieID, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Exec(
		"DELETE FROM "+kind.JoinTable()+" WHERE movie_id = ? AND "+kind.ForeignKey()+" = ?",
		movieID, id,
	).Error
}
