package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodbooks/goodbooks-api/config"
	"github.com/goodbooks/goodbooks-api/database"
	"github.com/goodbooks/goodbooks-api/model"
)

func init() {
	config.Opts = config.GetDefaultOptions()
}

// newTestStore opens a private in-memory database. A single connection keeps
// the pool from silently opening a second, empty memory database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, context.Background()))
	return NewStore(db)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

// seedCatalog loads a small fixed dataset. Book 3 deliberately has a
// goodreads_book_id different from its book_id so joins that confuse the two
// keys fail loudly.
func seedCatalog(t *testing.T, s *Store) {
	t.Helper()

	require.NoError(t, s.ImportBooks([]*model.Book{
		{BookID: 1, GoodreadsBookID: 101, Title: "The Hobbit", Authors: "J.R.R. Tolkien",
			OriginalPublicationYear: intPtr(1937), AverageRating: 4.25, RatingsCount: 2000},
		{BookID: 2, GoodreadsBookID: 102, Title: "Dune", Authors: "Frank Herbert",
			OriginalPublicationYear: intPtr(1965), AverageRating: 4.2, RatingsCount: 1500},
		{BookID: 3, GoodreadsBookID: 303, Title: "Hyperion", Authors: "Dan Simmons",
			OriginalPublicationYear: intPtr(1989), AverageRating: 4.1, RatingsCount: 900},
		{BookID: 4, GoodreadsBookID: 104, Title: "Dune Messiah", Authors: "Frank Herbert",
			OriginalPublicationYear: intPtr(1969), AverageRating: 3.9, RatingsCount: 700},
		{BookID: 5, GoodreadsBookID: 105, Title: "Untitled Draft", Authors: "Anonymous",
			AverageRating: 2.5, RatingsCount: 10},
	}))

	require.NoError(t, s.ImportTags([]*model.Tag{
		{TagID: 10, TagName: "fantasy"},
		{TagID: 20, TagName: "science-fiction"},
		{TagID: 30, TagName: "fiction"},
		{TagID: 40, TagName: "unused-tag"},
	}))

	require.NoError(t, s.ImportBookTags([]*model.BookTag{
		{GoodreadsBookID: 101, TagID: 10, Count: 50},
		{GoodreadsBookID: 101, TagID: 30, Count: 20},
		{GoodreadsBookID: 102, TagID: 20, Count: 80},
		{GoodreadsBookID: 303, TagID: 20, Count: 30},
		{GoodreadsBookID: 104, TagID: 20, Count: 5},
	}))
}
