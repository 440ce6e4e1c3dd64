// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package book

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwellhq/inkwell/internal/platform/request"
	"github.com/inkwellhq/inkwell/internal/platform/respond"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// Handler implements the HTTP layer for the book domain.
type Handler struct {
	bookService *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{bookService: service}
}

// Routes returns a [chi.Router] configured with the book domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public catalogue
	router.Get("/", handler.discover)
	router.Get("/{id}", handler.getPublicBook)
	router.Get("/user/{userId}", handler.listByAuthor)

	// Writer endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/", handler.create)
		r.Get("/my-books", handler.listMine)
		r.Get("/my-books/{id}", handler.getMine)
		r.Get("/publish-limit", handler.publishLimit)

		r.Patch("/{id}/draft", handler.saveDraft)
		r.Post("/{id}/publish", handler.publish)

		r.Delete("/{id}", handler.softDelete)
		r.Post("/{id}/restore", handler.restore)
	})

	return router
}

// AdminRoutes returns the moderation endpoints, restricted to admins.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))
	router.Get("/pending-purge", handler.listPendingPurge)
	return router
}

// # Request Payloads

// bookFields is the shared JSON shape for create and publish payloads.
type bookFields struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Synopsis    string   `json:"synopsis"`
	Content     string   `json:"content"`
	Genre       []string `json:"genre"`
	Tags        []string `json:"tags"`
	CoverImage  string   `json:"cover_image"`
	Language    string   `json:"language"`
	License     string   `json:"license"`
	IsMonetized bool     `json:"is_monetized"`
	Price       *float64 `json:"price"`
}

type draftRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
}

// # Writer Endpoints

/*
POST /api/v1/books.

Description: Creates a new unpublished draft owned by the caller.

Request:
  - Body: bookFields (Title, Description, Content required)

Response:
  - 201: Book: The created draft
  - 400: ErrInvalidJSON/Validation: Invalid input
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input bookFields
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldDescription, input.Description).
		Required(FieldContent, input.Content)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.bookService.Create(request.Context(), userID, CreateInput(input), time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
GET /api/v1/books/my-books.

Description: Lists the caller's own books, drafts included, newest first.
Pass include_deleted=true to also see soft-deleted books awaiting purge.

Response:
  - 200: []Book + pagination meta
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	includeDeleted := request.URL.Query().Get("include_deleted") == "true"
	page := pagination.FromRequest(request)
	books, total, err := handler.bookService.ListMine(request.Context(), userID, includeDeleted, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(page, total))
}

/*
GET /api/v1/books/my-books/{id}.

Description: Retrieves one of the caller's own books in any lifecycle
state, soft-deleted included.

Response:
  - 200: Book
  - 404: ErrNotFound: Unknown ID or owned by someone else
*/
func (handler *Handler) getMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.bookService.Get(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
PATCH /api/v1/books/{id}/draft.

Description: Autosaves a partial draft. Only the supplied fields are
overwritten; no policy checks run, so an autosave can never fail on
content length or rate limits.

Request:
  - Body: draftRequest (all fields optional)

Response:
  - 200: Book: The saved draft
  - 404: ErrNotFound: Unknown, foreign, or deleted book
*/
func (handler *Handler) saveDraft(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input draftRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	saved, err := handler.bookService.SaveDraft(request.Context(), userID, requestutil.ID(request, "id"), DraftInput{
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
	}, time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, saved)
}

/*
POST /api/v1/books/{id}/publish.

Description: Runs the full publish policy gate and transitions the book to
the published state. The payload always overwrites the stored draft.

Request:
  - Body: bookFields (Title, Description, Content, Genre required)

Response:
  - 200: Book: The published book
  - 400: Validation: Banned title, short content, or missing fields
  - 404: ErrNotFound: Unknown, foreign, or deleted book
  - 429: RateLimited: Daily publish cap reached
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input bookFields
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	published, err := handler.bookService.Publish(request.Context(), userID, requestutil.ID(request, "id"), PublishInput(input), time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, published)
}

/*
GET /api/v1/books/publish-limit.

Description: Reports the caller's standing against the daily publish cap.

Response:
  - 200: PublishLimit: {count, remaining, limit}
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) publishLimit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.bookService.PublishLimitStatus(request.Context(), userID, time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

// # Lifecycle Endpoints

/*
DELETE /api/v1/books/{id}.

Description: Soft-deletes an owned book. The book disappears from all
listings but remains restorable for the grace period.

Response:
  - 200: DeletionReceipt: {deleted_at, scheduled_for_deletion_at}
  - 404: ErrNotFound: Unknown, foreign, or already-deleted book
*/
func (handler *Handler) softDelete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	receipt, err := handler.bookService.SoftDelete(request.Context(), userID, requestutil.ID(request, "id"), time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, receipt)
}

/*
POST /api/v1/books/{id}/restore.

Description: Brings a soft-deleted book back to its prior state. Published
books come back published; drafts come back as drafts.

Response:
  - 200: Book: The restored book
  - 404: ErrNotFound: Unknown, foreign, or not-deleted book
*/
func (handler *Handler) restore(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	restored, err := handler.bookService.Restore(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, restored)
}

// # Public Endpoints

/*
GET /api/v1/books.

Description: The public catalogue. Supports genre, language, and search
filters plus page/limit pagination.

Response:
  - 200: []BookWithAuthor + pagination meta
*/
func (handler *Handler) discover(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()
	filter := DiscoverFilter{
		Genre:    queryParams.Get("genre"),
		Language: queryParams.Get("language"),
		Search:   queryParams.Get("search"),
	}

	page := pagination.FromRequest(request)
	books, total, err := handler.bookService.Discover(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(page, total))
}

/*
GET /api/v1/books/{id}.

Description: Retrieves a single published book with its author byline.
Drafts and soft-deleted books are indistinguishable from unknown IDs.

Response:
  - 200: BookWithAuthor
  - 404: ErrNotFound
*/
func (handler *Handler) getPublicBook(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.bookService.GetPublicBook(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
GET /api/v1/books/user/{userId}.

Description: A writer's public shelf: their published, non-deleted books.

Response:
  - 200: []Book + pagination meta
*/
func (handler *Handler) listByAuthor(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	books, total, err := handler.bookService.ListByAuthor(request.Context(), requestutil.ID(request, "userId"), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(page, total))
}

/*
GET /api/v1/admin/books/pending-purge.

Description: Moderation view of soft-deleted books already past their
purge schedule. Read-only; the purge itself runs on the scheduler, never
over HTTP.

Response:
  - 200: []Book
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) listPendingPurge(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.bookService.ListPendingPurge(request.Context(), time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, books)
}
