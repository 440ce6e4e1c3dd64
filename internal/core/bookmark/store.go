// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package bookmark

import (
	"context"

	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// Repository defines the persistence contract for bookmarks.
type Repository interface {

	// Create persists a new bookmark.
	Create(context context.Context, bookmark *Bookmark) error

	// Exists reports whether the reader already holds a bookmark for the
	// given book and page. A nil pageIndex matches only the whole-book
	// bookmark, never page bookmarks.
	Exists(context context.Context, userID string, bookID string, pageIndex *int) (bool, error)

	// Delete removes the reader's bookmark by ID. Returns
	// [apperr.ErrNotFound] when no bookmark with that ID belongs to the
	// reader.
	Delete(context context.Context, bookmarkID string, userID string) error

	// DeleteByBook removes all of the reader's bookmarks for one book.
	// Returns the number removed.
	DeleteByBook(context context.Context, userID string, bookID string) (int, error)

	// ListByUser returns the reader's shelf joined with book details,
	// newest bookmark first, along with the total count.
	ListByUser(context context.Context, userID string, page pagination.Page) ([]*BookmarkWithBook, int64, error)
}
