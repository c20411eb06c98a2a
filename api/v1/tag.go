package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/config"
	"github.com/goodbooks/goodbooks-api/http/request"
	"github.com/goodbooks/goodbooks-api/http/response"
	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/model"
)

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	find := &model.FindBook{
		Sort:     "avg",
		Order:    "desc",
		Page:     request.QueryIntParam(r, "page", 1),
		PageSize: request.QueryIntParam(r, "page_size", config.Opts.DefaultPageSize),
	}
	if err := h.validateListing(find); err != nil {
		response.UnprocessableEntity(w, r, err)
		return
	}

	// Total counts the tags collection itself; it can exceed the number of
	// aggregated rows when tags carry no book_tags usage.
	tags, total, err := h.store.ListTagStats(find.Page, find.PageSize)
	if err != nil {
		log.Error("Error aggregating tags", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &model.PaginatedResponse{
		Items:    tags,
		Page:     find.Page,
		PageSize: find.PageSize,
		Total:    total,
	})
}
