// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package bookmark

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellhq/inkwell/internal/core/book"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/pkg/pagination"
	"github.com/inkwellhq/inkwell/pkg/uuid"
)

// BookFinder resolves a published book. The book repository satisfies it.
type BookFinder interface {
	FindPublished(context context.Context, bookID string) (*book.BookWithAuthor, error)
}

// Service orchestrates bookmark operations.
type Service struct {
	repo   Repository
	books  BookFinder
	logger *slog.Logger
}

// NewService constructs a bookmark [Service].
func NewService(repo Repository, books BookFinder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
	}
}

// AddInput holds the fields for placing a new bookmark.
type AddInput struct {
	BookID    string
	PageIndex *int
}

/*
Add places a bookmark on a published book for the given reader.

The target must currently be published and not deleted; drafts and deleted
books read as not found. Placing a bookmark the reader already holds for
the same (book, page) pair is a conflict, where a nil page index is its own
key rather than a wildcard.

Parameters:
  - context: context.Context
  - userID: string
  - input: AddInput
  - now: time.Time

Returns:
  - *Bookmark: The created bookmark
  - error: Not-found, conflict, or storage failures
*/
func (service *Service) Add(context context.Context, userID string, input AddInput, now time.Time) (*Bookmark, error) {

	if _, err := service.books.FindPublished(context, input.BookID); err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotFoundMsg("Book not found or not published")
		}
		return nil, err
	}

	exists, err := service.repo.Exists(context, userID, input.BookID, input.PageIndex)
	if err != nil {
		return nil, fmt.Errorf("bookmark_service_exists_failed: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("Bookmark already exists")
	}

	created := &Bookmark{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    input.BookID,
		PageIndex: input.PageIndex,
		CreatedAt: now,
	}
	created.Type = created.Kind()

	if err := service.repo.Create(context, created); err != nil {
		return nil, fmt.Errorf("bookmark_service_create_failed: %w", err)
	}

	service.logger.Info("bookmark_added",
		slog.String("bookmark_id", created.ID),
		slog.String("user_id", userID),
		slog.String("book_id", input.BookID),
		slog.String("type", created.Type),
	)

	return created, nil
}

/*
Remove deletes one of the reader's bookmarks by its ID.

Parameters:
  - context: context.Context
  - userID: string
  - bookmarkID: string

Returns:
  - error: [apperr.ErrNotFound] when the bookmark does not exist or belongs
    to another reader
*/
func (service *Service) Remove(context context.Context, userID string, bookmarkID string) error {

	if err := service.repo.Delete(context, bookmarkID, userID); err != nil {
		return err
	}

	service.logger.Info("bookmark_removed",
		slog.String("bookmark_id", bookmarkID),
		slog.String("user_id", userID),
	)

	return nil
}

/*
ClearBook removes every bookmark the reader holds on one book.

Parameters:
  - context: context.Context
  - userID: string
  - bookID: string

Returns:
  - int: The number of bookmarks removed
  - error: Storage failures
*/
func (service *Service) ClearBook(context context.Context, userID string, bookID string) (int, error) {

	removed, err := service.repo.DeleteByBook(context, userID, bookID)
	if err != nil {
		return 0, fmt.Errorf("bookmark_service_clear_failed: %w", err)
	}

	if removed > 0 {
		service.logger.Info("bookmarks_cleared",
			slog.String("user_id", userID),
			slog.String("book_id", bookID),
			slog.Int("removed", removed),
		)
	}

	return removed, nil
}

/*
List returns the reader's shelf, newest bookmark first, with each entry
joined to its book's title, cover, and author byline.

Parameters:
  - context: context.Context
  - userID: string
  - page: pagination.Page

Returns:
  - []*BookmarkWithBook: The shelf page
  - int64: Total bookmarks on the shelf
  - error: Storage failures
*/
func (service *Service) List(context context.Context, userID string, page pagination.Page) ([]*BookmarkWithBook, int64, error) {
	return service.repo.ListByUser(context, userID, page)
}
