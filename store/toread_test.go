package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodbooks/goodbooks-api/model"
)

func TestListToReadBooks(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)

	require.NoError(t, s.ImportToRead([]*model.ToRead{
		{UserID: 7, BookID: 1},
		{UserID: 7, BookID: 3},
		{UserID: 8, BookID: 2},
	}))

	books, err := s.ListToReadBooks(7)
	require.NoError(t, err)
	require.Len(t, books, 2)

	titles := []string{books[0].Title, books[1].Title}
	assert.ElementsMatch(t, []string{"The Hobbit", "Hyperion"}, titles)
}

func TestListToReadBooksOmitsStaleIDs(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)

	// Entry 999 points at a book that no longer exists; it vanishes from
	// the listing instead of erroring.
	require.NoError(t, s.ImportToRead([]*model.ToRead{
		{UserID: 7, BookID: 2},
		{UserID: 7, BookID: 999},
	}))

	books, err := s.ListToReadBooks(7)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestListToReadBooksEmpty(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)

	books, err := s.ListToReadBooks(42)
	require.NoError(t, err)
	assert.Empty(t, books)
}
