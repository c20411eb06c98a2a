package model

// RatingIn is the rating submission body. A rating is keyed by the
// (user_id, book_id) pair; at most one row exists per pair.
type RatingIn struct {
	UserID int `json:"user_id" validate:"required"`
	BookID int `json:"book_id" validate:"required"`
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type Rating struct {
	ID     int64 `json:"_id,string"`
	UserID int   `json:"user_id"`
	BookID int   `json:"book_id"`
	Rating int   `json:"rating"`
}

// RatingSummary aggregates all ratings of one book. Histogram always carries
// the five buckets 1..5, zero-filled.
type RatingSummary struct {
	BookID        int         `json:"book_id"`
	AverageRating float64     `json:"average_rating"`
	RatingsCount  int         `json:"ratings_count"`
	Histogram     map[int]int `json:"histogram"`
}

type UpsertStatus string

const (
	UpsertCreated UpsertStatus = "created"
	UpsertUpdated UpsertStatus = "updated"
)

type UpsertResult struct {
	Status  UpsertStatus `json:"status"`
	Message string       `json:"message"`
}
