package v1

import (
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/config"
	"github.com/goodbooks/goodbooks-api/http/request"
	"github.com/goodbooks/goodbooks-api/http/response"
	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/model"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	find := &model.FindBook{
		Query:    request.QueryOptionalStringParam(r, "q"),
		Tag:      request.QueryOptionalStringParam(r, "tag"),
		MinAvg:   request.QueryOptionalFloatParam(r, "min_avg"),
		YearFrom: request.QueryOptionalIntParam(r, "year_from"),
		YearTo:   request.QueryOptionalIntParam(r, "year_to"),
		Sort:     request.QueryStringParam(r, "sort", "avg"),
		Order:    request.QueryStringParam(r, "order", "desc"),
		Page:     request.QueryIntParam(r, "page", 1),
		PageSize: request.QueryIntParam(r, "page_size", config.Opts.DefaultPageSize),
	}

	if err := h.validateListing(find); err != nil {
		response.UnprocessableEntity(w, r, err)
		return
	}

	books, total, err := h.store.ListBooks(find)
	if err != nil {
		log.Error("Error listing books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &model.PaginatedResponse{
		Items:    books,
		Page:     find.Page,
		PageSize: find.PageSize,
		Total:    total,
	})
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "bookID")

	book, err := h.store.GetBook(bookID)
	if err != nil {
		log.Error("Error getting book", zap.Int("book_id", bookID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r, errors.New("Book not found"))
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) getBookTags(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "bookID")

	book, err := h.store.GetBook(bookID)
	if err != nil {
		log.Error("Error getting book", zap.Int("book_id", bookID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r, errors.New("Book not found"))
		return
	}

	// book_tags keys on the external goodreads id, never on book_id.
	tags, err := h.store.ListBookTags(book.GoodreadsBookID)
	if err != nil {
		log.Error("Error listing book tags", zap.Int("book_id", bookID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, tags)
}

func (h *Handler) listAuthorBooks(w http.ResponseWriter, r *http.Request) {
	name := request.RouteStringParam(r, "name")

	// Fixed sort: best rated first.
	find := &model.FindBook{
		Author:   &name,
		Sort:     "avg",
		Order:    "desc",
		Page:     request.QueryIntParam(r, "page", 1),
		PageSize: request.QueryIntParam(r, "page_size", config.Opts.DefaultPageSize),
	}

	if err := h.validateListing(find); err != nil {
		response.UnprocessableEntity(w, r, err)
		return
	}

	books, total, err := h.store.ListBooks(find)
	if err != nil {
		log.Error("Error listing author books", zap.String("author", name), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &model.PaginatedResponse{
		Items:    books,
		Page:     find.Page,
		PageSize: find.PageSize,
		Total:    total,
	})
}

func (h *Handler) listToRead(w http.ResponseWriter, r *http.Request) {
	userID := request.RouteIntParam(r, "userID")

	books, err := h.store.ListToReadBooks(userID)
	if err != nil {
		log.Error("Error listing to-read books", zap.Int("user_id", userID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetDatasetStats()
	if err != nil {
		log.Error("Error computing dataset stats", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, stats)
}

// validateListing normalizes then validates pagination and sort parameters.
// Pages below 1 are coerced rather than rejected; an oversized page_size is
// a client error.
func (h *Handler) validateListing(find *model.FindBook) error {
	if find.Page < 1 {
		find.Page = 1
	}
	if find.PageSize > config.Opts.MaxPageSize {
		return errors.Errorf("page_size must be at most %d", config.Opts.MaxPageSize)
	}
	if err := validate.Struct(find); err != nil {
		return err
	}
	return nil
}
