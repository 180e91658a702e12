package handlers

import (
	"encoding/json"

	"movie-catalog/internal/models"
	"movie-catalog/internal/services"
)

// MovieRequest is the body of POST /movies and PUT /movies/{id}. Omitted
// fields are left unchanged on update; "rating": null clears the rating.
type MovieRequest struct {
	ID          *uint    `json:"id" example:"1"`
	Name        *string  `json:"name" example:"Inception"`
	ReleaseYear *int     `json:"release_year" example:"2010"`
	Rating      *float64 `json:"rating" example:"8.8"`

	ratingSet bool
}

func (r *MovieRequest) UnmarshalJSON(data []byte) error {
	var in services.MovieInput
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = MovieRequest{
		ID:          in.ID,
		Name:        in.Name,
		ReleaseYear: in.ReleaseYear,
		Rating:      in.Rating,
		ratingSet:   in.RatingSet,
	}
	return nil
}

func (r MovieRequest) toInput() services.MovieInput {
	return services.MovieInput{
		ID:          r.ID,
		Name:        r.Name,
		ReleaseYear: r.ReleaseYear,
		Rating:      r.Rating,
		RatingSet:   r.ratingSet,
	}
}

type MovieResponse struct {
	ID          uint     `json:"id" example:"1"`
	Name        string   `json:"name" example:"Inception"`
	ReleaseYear int      `json:"release_year" example:"2010"`
	Rating      *float64 `json:"rating" example:"8.8"`
}

func toMovieResponse(m *models.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Name:        m.Name,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
	}
}

func toMovieResponses(movies []models.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for i := range movies {
		out = append(out, toMovieResponse(&movies[i]))
	}
	return out
}

type EntityRequest struct {
	Name string `json:"name" example:"Keanu Reeves"`
}

type EntityResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Keanu Reeves"`
}
