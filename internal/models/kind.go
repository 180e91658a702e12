package models

import "strings"

// Kind names one of the entity types a movie can be associated with.
// Every kind has its own table and its own movie_<kind> join table.
type Kind string

const (
	KindActor      Kind = "actor"
	KindDirector   Kind = "director"
	KindTechnician Kind = "technician"
	KindGenre      Kind = "genre"
)

// Kinds lists every associated entity kind in route registration order.
var Kinds = []Kind{KindActor, KindDirector, KindTechnician, KindGenre}

func (k Kind) Table() string {
	return string(k)
}

func (k Kind) JoinTable() string {
	return "movie_" + string(k)
}

func (k Kind) ForeignKey() string {
	return string(k) + "_id"
}

func (k Kind) Plural() string {
	return string(k) + "s"
}

// Label is the capitalised name used in API messages, e.g. "Actor".
func (k Kind) Label() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// MaxNameLength is the size of the name column on the kind's table.
func (k Kind) MaxNameLength() int {
	if k == KindGenre {
		return 50
	}
	return 100
}

// Entity is a row of any associated entity table. Queries select the table
// explicitly with Kind.Table.
type Entity struct {
	ID   uint   `gorm:"primaryKey" json:"id" example:"1"`
	Name string `gorm:"not null" json:"name" example:"Keanu Reeves"`
}
