package v1

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodbooks/goodbooks-api/config"
	"github.com/goodbooks/goodbooks-api/database"
	"github.com/goodbooks/goodbooks-api/model"
	"github.com/goodbooks/goodbooks-api/store"
)

func init() {
	config.Opts = config.GetDefaultOptions()
}

func newTestRouter(t *testing.T) (*mux.Router, *store.Store) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, context.Background()))

	s := store.NewStore(db)
	require.NoError(t, s.ImportBooks([]*model.Book{
		{BookID: 1, GoodreadsBookID: 101, Title: "The Hobbit", Authors: "J.R.R. Tolkien", AverageRating: 4.25, RatingsCount: 2000},
		{BookID: 2, GoodreadsBookID: 102, Title: "Dune", Authors: "Frank Herbert", AverageRating: 4.2, RatingsCount: 1500},
	}))
	require.NoError(t, s.ImportTags([]*model.Tag{
		{TagID: 10, TagName: "fantasy"},
	}))
	require.NoError(t, s.ImportBookTags([]*model.BookTag{
		{GoodreadsBookID: 101, TagID: 10, Count: 50},
	}))

	router := mux.NewRouter()
	Server(router, s)
	return router, s
}

func doRequest(router *mux.Router, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestListBooksEnvelope(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/books?sort=title&order=asc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Items    []map[string]any `json:"items"`
		Page     int              `json:"page"`
		PageSize int              `json:"page_size"`
		Total    int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Page)
	assert.Equal(t, 20, envelope.PageSize)
	assert.Equal(t, 2, envelope.Total)
	require.Len(t, envelope.Items, 2)
	assert.Equal(t, "Dune", envelope.Items[0]["title"])

	// The storage-internal id is exposed as a string.
	_, ok := envelope.Items[0]["_id"].(string)
	assert.True(t, ok)
}

func TestListBooksRejectsOversizedPage(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/books?page_size=101", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListBooksRejectsUnknownSort(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/books?sort=published", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(router, http.MethodGet, "/books?order=sideways", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListBooksUnknownTagReturnsEmptyPage(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/books?tag=nope", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope model.PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 0, envelope.Total)
	assert.Empty(t, envelope.Items)
}

func TestGetBookNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/books/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBookTags(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/books/1/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []model.BookTagRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].TagID)
	assert.Equal(t, "fantasy", rows[0].TagName)
	assert.Equal(t, 50, rows[0].Count)

	w = doRequest(router, http.MethodGet, "/books/999/tags", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorBooks(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/authors/herbert/books", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Items []model.Book `json:"items"`
		Total int          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Total)
	require.Len(t, envelope.Items, 1)
	assert.Equal(t, "Dune", envelope.Items[0].Title)
}

func TestRatingsSummaryNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	// The book exists; the summary still 404s with zero ratings.
	w := doRequest(router, http.MethodGet, "/books/1/ratings/summary", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpsertRatingAuth(t *testing.T) {
	router, _ := newTestRouter(t)
	body := `{"user_id": 7, "book_id": 1, "rating": 5}`

	w := doRequest(router, http.MethodPost, "/ratings", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodPost, "/ratings", body, map[string]string{"X-API-Key": "wrong-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpsertRatingFlow(t *testing.T) {
	router, s := newTestRouter(t)
	auth := map[string]string{"X-API-Key": config.Opts.APIKey}

	w := doRequest(router, http.MethodPost, "/ratings", `{"user_id": 7, "book_id": 1, "rating": 5}`, auth)
	require.Equal(t, http.StatusOK, w.Code)

	var result model.UpsertResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, model.UpsertCreated, result.Status)

	w = doRequest(router, http.MethodPost, "/ratings", `{"user_id": 7, "book_id": 1, "rating": 2}`, auth)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, model.UpsertUpdated, result.Status)

	rating, err := s.GetRating(7, 1)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 2, rating.Rating)
}

func TestUpsertRatingValidation(t *testing.T) {
	router, s := newTestRouter(t)
	auth := map[string]string{"X-API-Key": config.Opts.APIKey}

	for _, body := range []string{
		`{"user_id": 7, "book_id": 1, "rating": 0}`,
		`{"user_id": 7, "book_id": 1, "rating": 6}`,
		`{"user_id": 7, "book_id": 1}`,
	} {
		w := doRequest(router, http.MethodPost, "/ratings", body, auth)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "body: %s", body)
	}

	total, err := s.CountRatings()
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestUpsertRatingMissingBook(t *testing.T) {
	router, s := newTestRouter(t)
	auth := map[string]string{"X-API-Key": config.Opts.APIKey}

	w := doRequest(router, http.MethodPost, "/ratings", `{"user_id": 7, "book_id": 999, "rating": 5}`, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The guard runs before the write: nothing was created.
	total, err := s.CountRatings()
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestToReadListing(t *testing.T) {
	router, s := newTestRouter(t)

	require.NoError(t, s.ImportToRead([]*model.ToRead{
		{UserID: 7, BookID: 2},
	}))

	w := doRequest(router, http.MethodGet, "/users/7/to-read", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var books []model.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestListTagsEnvelope(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Items []model.TagStat `json:"items"`
		Total int             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Total)
	require.Len(t, envelope.Items, 1)
	assert.Equal(t, "fantasy", envelope.Items[0].TagName)
	assert.Equal(t, 1, envelope.Items[0].BookCount)
	assert.Equal(t, 50, envelope.Items[0].TotalUses)
}

func TestStats(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats model.DatasetStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.BooksTotal)
	assert.Equal(t, 0, stats.RatingsTotal)
}
