// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package bookmark

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// Handler implements the HTTP layer for the bookmark domain.
type Handler struct {
	bookmarkService *Service
}

// NewHandler constructs a new bookmark [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{bookmarkService: service}
}

// Routes returns a [chi.Router] with the bookmark endpoints. Every route
// requires authentication; bookmarks are strictly per-reader.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.add)
	router.Delete("/{id}", handler.remove)
	router.Delete("/book/{bookId}", handler.clearBook)

	return router
}

type addRequest struct {
	BookID    string `json:"book_id"`
	PageIndex *int   `json:"page_index"`
}

/*
POST /api/v1/bookmarks.

Description: Bookmarks a published book, or a page within one when
page_index is supplied.

Request:
  - Body: addRequest (BookID required, PageIndex optional and non-negative)

Response:
  - 201: Bookmark: The created bookmark
  - 400: Validation: Missing book ID or negative page index
  - 404: ErrNotFound: Book unknown, unpublished, or deleted
  - 409: ErrConflict: Bookmark already exists
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldBookID, input.BookID).
		UUID(FieldBookID, input.BookID)
	v.Custom(FieldPageIndex, input.PageIndex != nil && *input.PageIndex < 0, "Page index must be zero or greater")

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.bookmarkService.Add(request.Context(), userID, AddInput{
		BookID:    input.BookID,
		PageIndex: input.PageIndex,
	}, time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
GET /api/v1/bookmarks.

Description: Lists the caller's shelf, newest bookmark first, each entry
joined with its book's title, cover, and author.

Response:
  - 200: []BookmarkWithBook + pagination meta
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	shelf, total, err := handler.bookmarkService.List(request.Context(), userID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, shelf, pagination.NewMeta(page, total))
}

/*
DELETE /api/v1/bookmarks/{id}.

Description: Removes one of the caller's bookmarks.

Response:
  - 204: Removed
  - 404: ErrNotFound: Unknown ID or owned by someone else
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.bookmarkService.Remove(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/bookmarks/book/{bookId}.

Description: Clears every bookmark the caller holds on one book.

Response:
  - 200: {removed: int}: How many bookmarks were cleared
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) clearBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	removed, err := handler.bookmarkService.ClearBook(request.Context(), userID, requestutil.ID(request, "bookId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int{"removed": removed})
}
