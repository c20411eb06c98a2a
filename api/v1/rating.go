package v1

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/http/request"
	"github.com/goodbooks/goodbooks-api/http/response"
	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/model"
)

func (h *Handler) getRatingsSummary(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "bookID")

	summary, err := h.store.GetRatingSummary(bookID)
	if err != nil {
		log.Error("Error aggregating ratings", zap.Int("book_id", bookID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	// A book with zero ratings has no summary, even when the book exists.
	if summary == nil {
		response.NotFound(w, r, errors.New("No ratings found for this book"))
		return
	}
	response.OK(w, r, summary)
}

func (h *Handler) upsertRating(w http.ResponseWriter, r *http.Request) {
	var rating model.RatingIn
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		response.BadRequest(w, r, errors.Wrap(err, "invalid request body"))
		return
	}
	if err := validate.Struct(&rating); err != nil {
		response.UnprocessableEntity(w, r, err)
		return
	}

	// The existence guard runs on every call: a rating against a missing
	// book never writes.
	book, err := h.store.GetBook(rating.BookID)
	if err != nil {
		log.Error("Error checking book", zap.Int("book_id", rating.BookID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r, errors.New("Book not found"))
		return
	}

	created, err := h.store.UpsertRating(&rating)
	if err != nil {
		log.Error("Error upserting rating",
			zap.Int("user_id", rating.UserID),
			zap.Int("book_id", rating.BookID),
			zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	result := &model.UpsertResult{Status: model.UpsertUpdated, Message: "Rating updated successfully"}
	if created {
		result = &model.UpsertResult{Status: model.UpsertCreated, Message: "Rating created successfully"}
	}
	response.OK(w, r, result)
}
