package services

import "errors"

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrEntityNotFound = errors.New("entity not found")
	// ErrEntityInUse is returned when deleting an entity that is still
	// linked to at least one movie.
	ErrEntityInUse = errors.New("entity is associated with movies")
	ErrValidation  = errors.New("validation failed")
	// ErrStorageDisabled is returned by poster operations when no object
	// storage is configured.
	ErrStorageDisabled = errors.New("poster storage is not configured")
)
