package model

type Tag struct {
	ID      int64  `json:"_id,string"`
	TagID   int    `json:"tag_id"`
	TagName string `json:"tag_name"`
}

// BookTag is the weighted association row linking a book, by its external
// goodreads id, to a tag.
type BookTag struct {
	GoodreadsBookID int `json:"goodreads_book_id"`
	TagID           int `json:"tag_id"`
	Count           int `json:"count"`
}

// BookTagRow is one entry of a per-book tag listing: a book_tags row joined
// with its tag name. The storage-internal id is stripped, the row being an
// artifact of the join.
type BookTagRow struct {
	TagID   int    `json:"tag_id"`
	TagName string `json:"tag_name"`
	Count   int    `json:"count"`
}

// TagStat is one aggregated row of the tag listing: per-tag row count and
// summed usage over book_tags.
type TagStat struct {
	TagID     int    `json:"tag_id"`
	TagName   string `json:"tag_name"`
	BookCount int    `json:"book_count"`
	TotalUses int    `json:"total_uses"`
}

type ToRead struct {
	ID     int64 `json:"_id,string"`
	UserID int   `json:"user_id"`
	BookID int   `json:"book_id"`
}
