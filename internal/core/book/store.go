// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package book

import (
	"context"
	"time"

	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// DiscoverFilter narrows the public catalogue listing.
type DiscoverFilter struct {
	// Genre keeps only books carrying this genre. Empty means all.
	Genre string
	// Language keeps only books in this language. Empty means all.
	Language string
	// Search matches against title and subtitle, case-insensitively.
	Search string
}

// Repository defines the persistence contract for manuscripts.
//
// Soft-deleted books are invisible to every read path except FindOwned and
// ListExpired; the purge is the only caller of Delete.
type Repository interface {

	// Create persists a brand-new draft.
	Create(context context.Context, book *Book) error

	// FindOwned returns the book with the given ID if it belongs to
	// userID, regardless of its lifecycle state. Lifecycle operations need
	// to see soft-deleted rows to restore them.
	FindOwned(context context.Context, bookID, userID string) (*Book, error)

	// FindPublished returns a published, non-deleted book by ID, joined
	// with its author byline. This is the public read path.
	FindPublished(context context.Context, bookID string) (*BookWithAuthor, error)

	// ListByOwner returns a writer's books, drafts included, newest
	// first, with the total row count for pagination. Soft-deleted books
	// appear only when includeDeleted is set.
	ListByOwner(context context.Context, userID string, includeDeleted bool, page pagination.Page) ([]*Book, int64, error)

	// ListPublished returns the filtered public catalogue, most recently
	// published first, with author bylines and the total row count.
	ListPublished(context context.Context, filter DiscoverFilter, page pagination.Page) ([]*BookWithAuthor, int64, error)

	// ListPublishedByAuthor returns a writer's published, non-deleted
	// books, most recently published first.
	ListPublishedByAuthor(context context.Context, authorID string, page pagination.Page) ([]*Book, int64, error)

	// Update persists all mutable fields of an existing book.
	Update(context context.Context, book *Book) error

	// Delete permanently removes a book row. Terminal and irreversible.
	Delete(context context.Context, bookID string) error

	// CountPublishedSince counts the user's books with a publishedat at or
	// after the given instant. Deliberately ignores deletion state: a
	// published-then-deleted book still consumed the writer's daily slot.
	CountPublishedSince(context context.Context, userID string, since time.Time) (int, error)

	// ListExpired returns soft-deleted books whose scheduled deletion time
	// has passed.
	ListExpired(context context.Context, now time.Time) ([]*Book, error)
}
