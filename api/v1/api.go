package v1

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/goodbooks/goodbooks-api/config"
	"github.com/goodbooks/goodbooks-api/store"
)

type Handler struct {
	store  *store.Store
	router *mux.Router
}

var validate = validator.New()

// Server registers the catalog routes. The write path sits behind the
// API-key interceptor; everything else is public.
func Server(router *mux.Router, store *store.Store) {
	handler := &Handler{
		store:  store,
		router: router,
	}

	router.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	router.HandleFunc("/books/{bookID:[0-9]+}", handler.getBook).Methods(http.MethodGet)
	router.HandleFunc("/books/{bookID:[0-9]+}/tags", handler.getBookTags).Methods(http.MethodGet)
	router.HandleFunc("/books/{bookID:[0-9]+}/ratings/summary", handler.getRatingsSummary).Methods(http.MethodGet)
	router.HandleFunc("/authors/{name}/books", handler.listAuthorBooks).Methods(http.MethodGet)
	router.HandleFunc("/tags", handler.listTags).Methods(http.MethodGet)
	router.HandleFunc("/users/{userID:[0-9]+}/to-read", handler.listToRead).Methods(http.MethodGet)
	router.HandleFunc("/stats", handler.getStats).Methods(http.MethodGet)

	ratings := router.PathPrefix("/ratings").Subrouter()
	ratings.Use(NewAuthInterceptor(config.Opts.APIKey).Intercept)
	ratings.HandleFunc("", handler.upsertRating).Methods(http.MethodPost)
}
