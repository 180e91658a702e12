package models

type Movie struct {
	ID          uint         `gorm:"primaryKey" json:"id" example:"1"`
	Name        string       `gorm:"size:100;not null" json:"name" example:"Inception"`
	ReleaseYear int          `gorm:"not null" json:"release_year" example:"2010"`
	Rating      *float64     `json:"rating" example:"8.8"`
	Genres      []Genre      `gorm:"many2many:movie_genre" json:"-"`
	Actors      []Actor      `gorm:"many2many:movie_actor" json:"-"`
	Directors   []Director   `gorm:"many2many:movie_director" json:"-"`
	Technicians []Technician `gorm:"many2many:movie_technician" json:"-"`
}

func (Movie) TableName() string {
	return "movie"
}

type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null" json:"name"`
}

func (Genre) TableName() string {
	return "genre"
}

type Actor struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Actor) TableName() string {
	return "actor"
}

type Director struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Director) TableName() string {
	return "director"
}

type Technician struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Technician) TableName() string {
	return "technician"
}
