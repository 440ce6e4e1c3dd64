// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package book_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/core/book"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/pkg/pagination"
	"github.com/inkwellhq/inkwell/pkg/pointer"
)

// fakeRepository is an in-memory [book.Repository] for service tests.
type fakeRepository struct {
	books map[string]*book.Book

	// failDelete makes Delete fail for the given book IDs, to exercise
	// the purge's log-and-continue path.
	failDelete map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		books:      make(map[string]*book.Book),
		failDelete: make(map[string]bool),
	}
}

func (f *fakeRepository) Create(_ context.Context, b *book.Book) error {
	clone := *b
	f.books[b.ID] = &clone
	return nil
}

func (f *fakeRepository) FindOwned(_ context.Context, bookID, userID string) (*book.Book, error) {
	found, ok := f.books[bookID]
	if !ok || found.UserID != userID {
		return nil, apperr.NotFound("Book")
	}
	clone := *found
	return &clone, nil
}

func (f *fakeRepository) FindPublished(_ context.Context, bookID string) (*book.BookWithAuthor, error) {
	found, ok := f.books[bookID]
	if !ok || !found.IsPublished || found.IsDeleted() {
		return nil, apperr.NotFound("Book")
	}
	return &book.BookWithAuthor{Book: *found}, nil
}

func (f *fakeRepository) ListByOwner(_ context.Context, userID string, includeDeleted bool, _ pagination.Page) ([]*book.Book, int64, error) {
	var owned []*book.Book
	for _, b := range f.books {
		if b.UserID == userID && (includeDeleted || !b.IsDeleted()) {
			owned = append(owned, b)
		}
	}
	return owned, int64(len(owned)), nil
}

func (f *fakeRepository) ListPublished(_ context.Context, _ book.DiscoverFilter, _ pagination.Page) ([]*book.BookWithAuthor, int64, error) {
	var published []*book.BookWithAuthor
	for _, b := range f.books {
		if b.IsPublished && !b.IsDeleted() {
			published = append(published, &book.BookWithAuthor{Book: *b})
		}
	}
	return published, int64(len(published)), nil
}

func (f *fakeRepository) ListPublishedByAuthor(_ context.Context, authorID string, _ pagination.Page) ([]*book.Book, int64, error) {
	var published []*book.Book
	for _, b := range f.books {
		if b.UserID == authorID && b.IsPublished && !b.IsDeleted() {
			published = append(published, b)
		}
	}
	return published, int64(len(published)), nil
}

func (f *fakeRepository) Update(_ context.Context, b *book.Book) error {
	if _, ok := f.books[b.ID]; !ok {
		return apperr.NotFound("Book")
	}
	clone := *b
	f.books[b.ID] = &clone
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, bookID string) error {
	if f.failDelete[bookID] {
		return apperr.Internal(io.ErrUnexpectedEOF)
	}
	delete(f.books, bookID)
	return nil
}

func (f *fakeRepository) CountPublishedSince(_ context.Context, userID string, since time.Time) (int, error) {
	count := 0
	for _, b := range f.books {
		// Deletion state is ignored on purpose: a published-then-deleted
		// book still consumed a daily slot.
		if b.UserID == userID && b.PublishedAt != nil && !b.PublishedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) ListExpired(_ context.Context, now time.Time) ([]*book.Book, error) {
	var expired []*book.Book
	for _, b := range f.books {
		if b.IsDeleted() && b.ScheduledForDeletionAt != nil && b.ScheduledForDeletionAt.Before(now) {
			expired = append(expired, b)
		}
	}
	return expired, nil
}

// # Test Helpers

func newTestService(repo book.Repository) *book.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return book.NewService(repo, logger)
}

func validPublishInput() book.PublishInput {
	return book.PublishInput{
		Title:       "The Long Winter",
		Description: "A story of endurance",
		Content:     strings.Repeat("a", book.MinCharacterCount),
		Genre:       []string{"Fiction"},
	}
}

// seedDraft creates a draft through the service and returns it.
func seedDraft(t *testing.T, service *book.Service, userID string, now time.Time) *book.Book {
	t.Helper()
	draft, err := service.Create(context.Background(), userID, book.CreateInput{
		Title:       "Working title",
		Description: "Draft description",
		Content:     "Early pages",
	}, now)
	require.NoError(t, err)
	return draft
}

// # Drafting

func TestService_Create(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("defaults_applied", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		draft, err := service.Create(context.Background(), "writer-1", book.CreateInput{
			Title:       "Working title",
			Description: "Draft",
			Content:     "Pages",
		}, now)
		require.NoError(t, err)

		assert.Equal(t, book.DefaultLanguage, draft.Language)
		assert.Equal(t, book.DefaultLicense, draft.License)
		assert.False(t, draft.IsPublished)
		assert.Nil(t, draft.PublishedAt)
		assert.Equal(t, now, draft.LastSavedAt)
	})

	t.Run("monetized_requires_price", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		_, err := service.Create(context.Background(), "writer-1", book.CreateInput{
			Title:       "Working title",
			Description: "Draft",
			Content:     "Pages",
			IsMonetized: true,
		}, now)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("free_book_price_nulled", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		draft, err := service.Create(context.Background(), "writer-1", book.CreateInput{
			Title:       "Working title",
			Description: "Draft",
			Content:     "Pages",
			IsMonetized: false,
			Price:       pointer.To(4.99),
		}, now)
		require.NoError(t, err)
		assert.Nil(t, draft.Price)
	})
}

func TestService_SaveDraft(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Minute)

	t.Run("partial_overlay", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		saved, err := service.SaveDraft(context.Background(), "writer-1", draft.ID, book.DraftInput{
			Content: pointer.To("New pages"),
		}, later)
		require.NoError(t, err)

		// Only the supplied field changes.
		assert.Equal(t, "New pages", saved.Content)
		assert.Equal(t, draft.Title, saved.Title)
		assert.Equal(t, draft.Description, saved.Description)
		assert.Equal(t, later, saved.LastSavedAt)
	})

	t.Run("short_content_is_fine", func(t *testing.T) {
		// Autosave runs no policy checks; a 10-character draft saves.
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		_, err := service.SaveDraft(context.Background(), "writer-1", draft.ID, book.DraftInput{
			Content: pointer.To("ten chars."),
		}, later)
		assert.NoError(t, err)
	})

	t.Run("foreign_book_not_found", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		_, err := service.SaveDraft(context.Background(), "writer-2", draft.ID, book.DraftInput{}, later)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("deleted_book_not_found", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		_, err := service.SoftDelete(context.Background(), "writer-1", draft.ID, now)
		require.NoError(t, err)

		_, err = service.SaveDraft(context.Background(), "writer-1", draft.ID, book.DraftInput{}, later)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

func TestService_ListMine(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	page := pagination.Page{Number: 1, Limit: 20}

	repo := newFakeRepository()
	service := newTestService(repo)

	active := seedDraft(t, service, "writer-1", now)
	deleted := seedDraft(t, service, "writer-1", now)
	_, err := service.SoftDelete(context.Background(), "writer-1", deleted.ID, now)
	require.NoError(t, err)

	// Default view hides the soft-deleted book.
	books, total, err := service.ListMine(context.Background(), "writer-1", false, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, books, 1)
	assert.Equal(t, active.ID, books[0].ID)

	// include_deleted surfaces it again for restore.
	_, total, err = service.ListMine(context.Background(), "writer-1", true, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

// # Publishing

func TestService_Publish(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("happy_path", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		published, err := service.Publish(context.Background(), "writer-1", draft.ID, validPublishInput(), now)
		require.NoError(t, err)

		assert.True(t, published.IsPublished)
		require.NotNil(t, published.PublishedAt)
		assert.Equal(t, now, *published.PublishedAt)
		assert.Equal(t, "the-long-winter", published.Slug)
	})

	t.Run("banned_title_rejected_before_anything_else", func(t *testing.T) {
		// The book does not even exist: the title gate fires first.
		service := newTestService(newFakeRepository())

		input := validPublishInput()
		input.Title = "read this now! a memoir"

		_, err := service.Publish(context.Background(), "writer-1", "missing-id", input, now)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("short_content_rejected_before_rate_check", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		input := validPublishInput()
		input.Content = strings.Repeat("a", 4000)

		_, err := service.Publish(context.Background(), "writer-1", "missing-id", input, now)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("rate_limit_at_cap", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)

		for i := 0; i < book.MaxBooksPerDay; i++ {
			draft := seedDraft(t, service, "writer-1", now)
			_, err := service.Publish(context.Background(), "writer-1", draft.ID, validPublishInput(), now.Add(time.Duration(i)*time.Hour))
			require.NoError(t, err)
		}

		third := seedDraft(t, service, "writer-1", now)
		_, err := service.Publish(context.Background(), "writer-1", third.ID, validPublishInput(), now.Add(2*time.Hour))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeRateLimited))

		// Another writer is unaffected.
		other := seedDraft(t, service, "writer-2", now)
		_, err = service.Publish(context.Background(), "writer-2", other.ID, validPublishInput(), now.Add(2*time.Hour))
		assert.NoError(t, err)
	})

	t.Run("rate_limit_window_slides", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)

		for i := 0; i < book.MaxBooksPerDay; i++ {
			draft := seedDraft(t, service, "writer-1", now)
			_, err := service.Publish(context.Background(), "writer-1", draft.ID, validPublishInput(), now)
			require.NoError(t, err)
		}

		// 25 hours later both earlier publishes fall out of the window.
		next := seedDraft(t, service, "writer-1", now)
		_, err := service.Publish(context.Background(), "writer-1", next.ID, validPublishInput(), now.Add(25*time.Hour))
		assert.NoError(t, err)
	})

	t.Run("deleted_published_book_still_counts", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)

		for i := 0; i < book.MaxBooksPerDay; i++ {
			draft := seedDraft(t, service, "writer-1", now)
			_, err := service.Publish(context.Background(), "writer-1", draft.ID, validPublishInput(), now)
			require.NoError(t, err)
			_, err = service.SoftDelete(context.Background(), "writer-1", draft.ID, now.Add(time.Minute))
			require.NoError(t, err)
		}

		next := seedDraft(t, service, "writer-1", now)
		_, err := service.Publish(context.Background(), "writer-1", next.ID, validPublishInput(), now.Add(time.Hour))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeRateLimited))
	})

	t.Run("deleted_book_not_publishable", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		_, err := service.SoftDelete(context.Background(), "writer-1", draft.ID, now)
		require.NoError(t, err)

		_, err = service.Publish(context.Background(), "writer-1", draft.ID, validPublishInput(), now.Add(time.Hour))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("missing_genre_rejected", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		input := validPublishInput()
		input.Genre = []string{"  "}

		_, err := service.Publish(context.Background(), "writer-1", draft.ID, input, now)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})
}

func TestService_PublishLimitStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepository()
	service := newTestService(repo)

	status, err := service.PublishLimitStatus(context.Background(), "writer-1", now)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Count)
	assert.Equal(t, book.MaxBooksPerDay, status.Remaining)
	assert.Equal(t, book.MaxBooksPerDay, status.Limit)

	draft := seedDraft(t, service, "writer-1", now)
	_, err = service.Publish(context.Background(), "writer-1", draft.ID, validPublishInput(), now)
	require.NoError(t, err)

	status, err = service.PublishLimitStatus(context.Background(), "writer-1", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, status.Count)
	assert.Equal(t, book.MaxBooksPerDay-1, status.Remaining)
}

// # Lifecycle

func TestService_SoftDeleteAndRestore(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("receipt_carries_grace_period", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		receipt, err := service.SoftDelete(context.Background(), "writer-1", draft.ID, now)
		require.NoError(t, err)

		assert.Equal(t, now, receipt.DeletedAt)
		assert.Equal(t, now.Add(book.DeletionGracePeriod), receipt.ScheduledForDeletionAt)
	})

	t.Run("double_delete_not_found", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		_, err := service.SoftDelete(context.Background(), "writer-1", draft.ID, now)
		require.NoError(t, err)

		_, err = service.SoftDelete(context.Background(), "writer-1", draft.ID, now.Add(time.Hour))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("restore_preserves_published_state", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		published, err := service.Publish(context.Background(), "writer-1", draft.ID, validPublishInput(), now)
		require.NoError(t, err)

		_, err = service.SoftDelete(context.Background(), "writer-1", draft.ID, now.Add(time.Hour))
		require.NoError(t, err)

		restored, err := service.Restore(context.Background(), "writer-1", draft.ID)
		require.NoError(t, err)

		assert.True(t, restored.IsPublished)
		assert.Equal(t, published.PublishedAt, restored.PublishedAt)
		assert.Equal(t, published.Title, restored.Title)
		assert.Nil(t, restored.DeletedAt)
		assert.Nil(t, restored.ScheduledForDeletionAt)
	})

	t.Run("restore_active_book_not_found", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		_, err := service.Restore(context.Background(), "writer-1", draft.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

func TestService_PurgeExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("respects_grace_period", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		_, err := service.SoftDelete(context.Background(), "writer-1", draft.ID, now)
		require.NoError(t, err)

		// Inside the grace period nothing is purged.
		purged, err := service.PurgeExpired(context.Background(), now.Add(9*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 0, purged)

		// Past the schedule the book goes.
		purged, err = service.PurgeExpired(context.Background(), now.Add(11*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, purged)

		// Idempotent: a second run finds nothing.
		purged, err = service.PurgeExpired(context.Background(), now.Add(11*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 0, purged)

		_, err = service.Get(context.Background(), "writer-1", draft.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("one_failure_does_not_abort_batch", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)

		first := seedDraft(t, service, "writer-1", now)
		second := seedDraft(t, service, "writer-1", now)
		for _, id := range []string{first.ID, second.ID} {
			_, err := service.SoftDelete(context.Background(), "writer-1", id, now)
			require.NoError(t, err)
		}
		repo.failDelete[first.ID] = true

		purged, err := service.PurgeExpired(context.Background(), now.Add(11*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, purged)

		// The failed book is still there for the next run.
		_, err = service.Get(context.Background(), "writer-1", first.ID)
		assert.NoError(t, err)
	})

	t.Run("active_books_never_purged", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)
		draft := seedDraft(t, service, "writer-1", now)

		purged, err := service.PurgeExpired(context.Background(), now.Add(30*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 0, purged)

		_, err = service.Get(context.Background(), "writer-1", draft.ID)
		assert.NoError(t, err)
	})
}
