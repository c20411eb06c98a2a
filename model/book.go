package model

// Book mirrors one row of the goodbooks dataset. ID is the storage-internal
// row key and is rendered as the string field "_id"; book_id is the stable
// dataset key and goodreads_book_id the external key book_tags rows use.
type Book struct {
	ID                      int64   `json:"_id,string"`
	BookID                  int     `json:"book_id"`
	GoodreadsBookID         int     `json:"goodreads_book_id"`
	Title                   string  `json:"title"`
	Authors                 string  `json:"authors"`
	OriginalPublicationYear *int    `json:"original_publication_year"`
	AverageRating           float64 `json:"average_rating"`
	RatingsCount            int     `json:"ratings_count"`
	ImageURL                *string `json:"image_url"`
	SmallImageURL           *string `json:"small_image_url"`
}

// FindBook carries the validated listing parameters. Nil pointer fields leave
// that predicate unconstrained.
type FindBook struct {
	// Query matches case-insensitively as a substring of title OR authors.
	Query *string
	// Tag restricts to books carrying the first tag whose name contains it.
	Tag *string
	// MinAvg restricts to average_rating >= MinAvg.
	MinAvg *float64
	// YearFrom/YearTo bound original_publication_year on either side.
	YearFrom *int
	YearTo   *int
	// Author matches case-insensitively against the authors field only.
	Author *string

	Sort     string `validate:"oneof=avg ratings_count year title"`
	Order    string `validate:"oneof=asc desc"`
	Page     int    `validate:"min=1"`
	PageSize int    `validate:"min=1"`
}

var sortFields = map[string]string{
	"avg":           "average_rating",
	"ratings_count": "ratings_count",
	"year":          "original_publication_year",
	"title":         "title",
}

// SortField maps the request sort key to the storage column, falling back to
// average_rating for anything unrecognized.
func (f *FindBook) SortField() string {
	if field, ok := sortFields[f.Sort]; ok {
		return field
	}
	return "average_rating"
}

func (f *FindBook) SortDirection() string {
	if f.Order == "asc" {
		return "ASC"
	}
	return "DESC"
}

func (f *FindBook) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PageSize
}
