// Package core contains the domain types shared across the application.
package core

// Movie is a single catalog entry. Documents in Cosmos DB carry the IMDb-style
// movie identifier in "id" rather than relying on the Mongo object id.
type Movie struct {
	ID        string   `bson:"id" json:"id"`
	Title     string   `bson:"title" json:"title" validate:"required,min=1,max=256"`
	Year      int      `bson:"year" json:"year" validate:"required,min=1874,max=2100"`
	Runtime   int      `bson:"runtime,omitempty" json:"runtime,omitempty" validate:"omitempty,min=1"`
	Genres    []string `bson:"genres,omitempty" json:"genres,omitempty"`
	Directors []string `bson:"directors,omitempty" json:"directors,omitempty"`
	Cast      []string `bson:"cast,omitempty" json:"cast,omitempty"`
	Rating    float64  `bson:"rating,omitempty" json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	Plot      string   `bson:"plot,omitempty" json:"plot,omitempty" validate:"omitempty,max=2000"`
	Poster    string   `bson:"poster,omitempty" json:"poster,omitempty" validate:"omitempty,url"`
}
