// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package bookmark_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/core/book"
	"github.com/inkwellhq/inkwell/internal/core/bookmark"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/pkg/pagination"
	"github.com/inkwellhq/inkwell/pkg/pointer"
)

// fakeBooks is an in-memory [bookmark.BookFinder] holding published IDs.
type fakeBooks struct {
	published map[string]bool
}

func (f *fakeBooks) FindPublished(_ context.Context, bookID string) (*book.BookWithAuthor, error) {
	if !f.published[bookID] {
		return nil, apperr.NotFound("Book")
	}
	return &book.BookWithAuthor{Book: book.Book{ID: bookID, IsPublished: true}}, nil
}

// fakeRepository is an in-memory [bookmark.Repository].
type fakeRepository struct {
	bookmarks map[string]*bookmark.Bookmark
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bookmarks: make(map[string]*bookmark.Bookmark)}
}

func (f *fakeRepository) Create(_ context.Context, b *bookmark.Bookmark) error {
	clone := *b
	f.bookmarks[b.ID] = &clone
	return nil
}

func (f *fakeRepository) Exists(_ context.Context, userID, bookID string, pageIndex *int) (bool, error) {
	for _, b := range f.bookmarks {
		if b.UserID != userID || b.BookID != bookID {
			continue
		}
		// nil matches only nil; a page matches only the same page.
		if b.PageIndex == nil && pageIndex == nil {
			return true, nil
		}
		if b.PageIndex != nil && pageIndex != nil && *b.PageIndex == *pageIndex {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Delete(_ context.Context, bookmarkID, userID string) error {
	found, ok := f.bookmarks[bookmarkID]
	if !ok || found.UserID != userID {
		return apperr.NotFound("Bookmark")
	}
	delete(f.bookmarks, bookmarkID)
	return nil
}

func (f *fakeRepository) DeleteByBook(_ context.Context, userID, bookID string) (int, error) {
	removed := 0
	for id, b := range f.bookmarks {
		if b.UserID == userID && b.BookID == bookID {
			delete(f.bookmarks, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID string, _ pagination.Page) ([]*bookmark.BookmarkWithBook, int64, error) {
	var shelf []*bookmark.BookmarkWithBook
	for _, b := range f.bookmarks {
		if b.UserID == userID {
			shelf = append(shelf, &bookmark.BookmarkWithBook{Bookmark: *b})
		}
	}
	return shelf, int64(len(shelf)), nil
}

func newTestService(repo bookmark.Repository, books bookmark.BookFinder) *bookmark.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return bookmark.NewService(repo, books, logger)
}

func TestService_Add(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	books := &fakeBooks{published: map[string]bool{"book-1": true}}

	t.Run("whole_book_bookmark", func(t *testing.T) {
		service := newTestService(newFakeRepository(), books)

		created, err := service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1"}, now)
		require.NoError(t, err)

		assert.Equal(t, bookmark.TypeBook, created.Type)
		assert.Nil(t, created.PageIndex)
		assert.Equal(t, now, created.CreatedAt)
	})

	t.Run("page_bookmark", func(t *testing.T) {
		service := newTestService(newFakeRepository(), books)

		created, err := service.Add(context.Background(), "reader-1", bookmark.AddInput{
			BookID:    "book-1",
			PageIndex: pointer.To(42),
		}, now)
		require.NoError(t, err)

		assert.Equal(t, bookmark.TypePage, created.Type)
		require.NotNil(t, created.PageIndex)
		assert.Equal(t, 42, *created.PageIndex)
	})

	t.Run("duplicate_whole_book_conflicts", func(t *testing.T) {
		service := newTestService(newFakeRepository(), books)

		_, err := service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1"}, now)
		require.NoError(t, err)

		_, err = service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1"}, now)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
	})

	t.Run("duplicate_page_conflicts", func(t *testing.T) {
		service := newTestService(newFakeRepository(), books)

		_, err := service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1", PageIndex: pointer.To(5)}, now)
		require.NoError(t, err)

		_, err = service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1", PageIndex: pointer.To(5)}, now)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
	})

	t.Run("whole_book_and_pages_coexist", func(t *testing.T) {
		service := newTestService(newFakeRepository(), books)

		_, err := service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1"}, now)
		require.NoError(t, err)

		_, err = service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1", PageIndex: pointer.To(5)}, now)
		require.NoError(t, err)

		_, err = service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1", PageIndex: pointer.To(6)}, now)
		require.NoError(t, err)
	})

	t.Run("same_page_different_readers", func(t *testing.T) {
		service := newTestService(newFakeRepository(), books)

		_, err := service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1", PageIndex: pointer.To(5)}, now)
		require.NoError(t, err)

		_, err = service.Add(context.Background(), "reader-2", bookmark.AddInput{BookID: "book-1", PageIndex: pointer.To(5)}, now)
		require.NoError(t, err)
	})

	t.Run("unpublished_book_not_found", func(t *testing.T) {
		service := newTestService(newFakeRepository(), books)

		_, err := service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "draft-1"}, now)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

func TestService_Remove(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	books := &fakeBooks{published: map[string]bool{"book-1": true}}

	t.Run("removes_own_bookmark", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, books)

		created, err := service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1"}, now)
		require.NoError(t, err)

		require.NoError(t, service.Remove(context.Background(), "reader-1", created.ID))

		_, total, err := service.List(context.Background(), "reader-1", pagination.Page{Number: 1, Limit: 20})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("foreign_bookmark_not_found", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, books)

		created, err := service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1"}, now)
		require.NoError(t, err)

		err = service.Remove(context.Background(), "reader-2", created.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("unknown_id_not_found", func(t *testing.T) {
		service := newTestService(newFakeRepository(), books)

		err := service.Remove(context.Background(), "reader-1", "missing")
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

func TestService_ClearBook(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	books := &fakeBooks{published: map[string]bool{"book-1": true, "book-2": true}}

	repo := newFakeRepository()
	service := newTestService(repo, books)

	_, err := service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1"}, now)
	require.NoError(t, err)
	_, err = service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-1", PageIndex: pointer.To(3)}, now)
	require.NoError(t, err)
	_, err = service.Add(context.Background(), "reader-1", bookmark.AddInput{BookID: "book-2"}, now)
	require.NoError(t, err)

	removed, err := service.ClearBook(context.Background(), "reader-1", "book-1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	// The other book's bookmark survives.
	_, total, err := service.List(context.Background(), "reader-1", pagination.Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
