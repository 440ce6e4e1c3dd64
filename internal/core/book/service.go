// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package book

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/pkg/pagination"
	"github.com/inkwellhq/inkwell/pkg/slice"
	"github.com/inkwellhq/inkwell/pkg/slug"
	"github.com/inkwellhq/inkwell/pkg/uuid"
)

// # Service Layer

// Service orchestrates drafting and publishing of manuscripts.
//
// # Time Handling
//
// Every time-dependent operation receives the current instant as an explicit
// argument instead of reading the wall clock. The HTTP layer passes
// time.Now(); tests pass whatever instant the scenario needs.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a book [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Draft Management

// CreateInput holds the initial fields of a new draft. Only Title,
// Description, and Content are required at creation; the publish gate
// enforces the rest later.
type CreateInput struct {
	Title       string
	Subtitle    string
	Description string
	Synopsis    string
	Content     string
	Genre       []string
	Tags        []string
	CoverImage  string
	Language    string
	License     string
	IsMonetized bool
	Price       *float64
}

/*
Create persists a brand-new unpublished draft owned by the given user.

Parameters:
  - context: context.Context
  - userID: string
  - input: CreateInput
  - now: time.Time

Returns:
  - *Book: The created draft
  - error: Validation or storage failures
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput, now time.Time) (*Book, error) {

	if err := checkMonetization(input.IsMonetized, input.Price); err != nil {
		return nil, err
	}

	// Free books never carry a stale price.
	price := input.Price
	if !input.IsMonetized {
		price = nil
	}

	language := input.Language
	if language == "" {
		language = DefaultLanguage
	}
	license := input.License
	if license == "" {
		license = DefaultLicense
	}

	draft := &Book{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       input.Title,
		Subtitle:    input.Subtitle,
		Description: input.Description,
		Synopsis:    input.Synopsis,
		Content:     input.Content,
		Genre:       slice.CleanStrings(input.Genre),
		Tags:        slice.Dedupe(slice.CleanStrings(input.Tags)),
		CoverImage:  input.CoverImage,
		Language:    language,
		License:     license,
		IsMonetized: input.IsMonetized,
		Price:       price,
		LastSavedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, draft); err != nil {
		return nil, fmt.Errorf("book_service_create_failed: %w", err)
	}

	service.logger.Info("book_created",
		slog.String("book_id", draft.ID),
		slog.String("user_id", userID),
	)

	return draft, nil
}

/*
Get retrieves one of the user's own books in any lifecycle state.

Parameters:
  - context: context.Context
  - userID: string
  - bookID: string

Returns:
  - *Book: The owned book, drafts and soft-deleted included
  - error: apperr.NotFound if absent or owned by someone else
*/
func (service *Service) Get(context context.Context, userID, bookID string) (*Book, error) {
	return service.repo.FindOwned(context, bookID, userID)
}

/*
ListMine returns the user's books, drafts included. Soft-deleted books are
hidden unless includeDeleted is set, which is how a writer finds a book to
restore.

Parameters:
  - context: context.Context
  - userID: string
  - includeDeleted: bool
  - page: pagination.Page

Returns:
  - []*Book: The user's shelf, newest first
  - int64: Total row count
  - error: Query failures
*/
func (service *Service) ListMine(context context.Context, userID string, includeDeleted bool, page pagination.Page) ([]*Book, int64, error) {
	return service.repo.ListByOwner(context, userID, includeDeleted, page)
}

// DraftInput holds a partial autosave payload. Nil pointers leave the
// stored field untouched.
type DraftInput struct {
	Title       *string
	Description *string
	Content     *string
}

/*
SaveDraft applies an autosave to an owned, non-deleted book.

Description: Overwrites only the supplied fields and bumps LastSavedAt.
Autosave must never fail on policy grounds, so no length or rate checks
run here.

Parameters:
  - context: context.Context
  - userID: string
  - bookID: string
  - input: DraftInput
  - now: time.Time

Returns:
  - *Book: The saved draft
  - error: apperr.NotFound or storage failures
*/
func (service *Service) SaveDraft(context context.Context, userID, bookID string, input DraftInput, now time.Time) (*Book, error) {

	target, err := service.repo.FindOwned(context, bookID, userID)
	if err != nil {
		return nil, err
	}
	if target.IsDeleted() {
		return nil, apperr.NotFoundMsg("Book not found or deleted")
	}

	if input.Title != nil {
		target.Title = *input.Title
	}
	if input.Description != nil {
		target.Description = *input.Description
	}
	if input.Content != nil {
		target.Content = *input.Content
	}
	target.LastSavedAt = now
	target.UpdatedAt = now

	if err := service.repo.Update(context, target); err != nil {
		return nil, fmt.Errorf("book_service_save_draft_failed: %w", err)
	}

	return target, nil
}

// # Publishing

// PublishInput holds the full set of publishable fields. Publishing always
// overwrites the stored draft with this payload.
type PublishInput struct {
	Title       string
	Subtitle    string
	Description string
	Synopsis    string
	Content     string
	Genre       []string
	Tags        []string
	CoverImage  string
	Language    string
	License     string
	IsMonetized bool
	Price       *float64
}

/*
Publish validates a draft against the publishing policy and, on success,
transitions it to the published state.

Description: Checks run fail-fast in a fixed order: banned title phrase,
minimum content length, daily rate limit, ownership and deletion state, and
finally required-field presence. Each publish re-validates against the
current 24h window, so republishing an existing book consumes another
daily slot.

Parameters:
  - context: context.Context
  - userID: string
  - bookID: string
  - input: PublishInput
  - now: time.Time

Returns:
  - *Book: The published book with PublishedAt = now
  - error: Validation, rate-limit, not-found, or storage failures
*/
func (service *Service) Publish(context context.Context, userID, bookID string, input PublishInput, now time.Time) (*Book, error) {

	// 1. Banned title phrase
	if err := checkTitlePolicy(input.Title); err != nil {
		return nil, err
	}

	// 2. Minimum content length
	if err := checkContentLength(input.Content); err != nil {
		return nil, err
	}

	// 3. Daily rate limit over the trailing window
	published, err := service.repo.CountPublishedSince(context, userID, now.Add(-PublishWindow))
	if err != nil {
		return nil, fmt.Errorf("book_service_publish_count_failed: %w", err)
	}
	if err := checkPublishRate(published); err != nil {
		return nil, err
	}

	// 4. Ownership and deletion state
	target, err := service.repo.FindOwned(context, bookID, userID)
	if err != nil {
		return nil, err
	}
	if target.IsDeleted() {
		return nil, apperr.NotFoundMsg("Book not found or deleted")
	}

	// 5. Required fields on the merged payload
	genre := slice.CleanStrings(input.Genre)
	if err := checkRequiredFields(input.Title, input.Description, genre); err != nil {
		return nil, err
	}

	if err := checkMonetization(input.IsMonetized, input.Price); err != nil {
		return nil, err
	}

	// All gates passed: overwrite the publishable fields and stamp the
	// transition.
	price := input.Price
	if !input.IsMonetized {
		price = nil
	}
	language := input.Language
	if language == "" {
		language = DefaultLanguage
	}
	license := input.License
	if license == "" {
		license = DefaultLicense
	}

	target.Title = input.Title
	target.Subtitle = input.Subtitle
	target.Description = input.Description
	target.Synopsis = input.Synopsis
	target.Content = input.Content
	target.Genre = genre
	target.Tags = slice.Dedupe(slice.CleanStrings(input.Tags))
	target.CoverImage = input.CoverImage
	target.Language = language
	target.License = license
	target.IsMonetized = input.IsMonetized
	target.Price = price
	target.Slug = slug.Make(input.Title)
	target.IsPublished = true
	publishedAt := now
	target.PublishedAt = &publishedAt
	target.LastSavedAt = now
	target.UpdatedAt = now

	if err := service.repo.Update(context, target); err != nil {
		return nil, fmt.Errorf("book_service_publish_failed: %w", err)
	}

	service.logger.Info("book_published",
		slog.String("book_id", target.ID),
		slog.String("user_id", userID),
		slog.Int("published_in_window", published+1),
	)

	return target, nil
}

/*
PublishLimitStatus reports the user's standing against the daily cap.

Parameters:
  - context: context.Context
  - userID: string
  - now: time.Time

Returns:
  - *PublishLimit: Count, remaining, and the limit constant
  - error: Query failures
*/
func (service *Service) PublishLimitStatus(context context.Context, userID string, now time.Time) (*PublishLimit, error) {
	count, err := service.repo.CountPublishedSince(context, userID, now.Add(-PublishWindow))
	if err != nil {
		return nil, fmt.Errorf("book_service_limit_status_failed: %w", err)
	}

	remaining := MaxBooksPerDay - count
	if remaining < 0 {
		remaining = 0
	}

	return &PublishLimit{
		Count:     count,
		Remaining: remaining,
		Limit:     MaxBooksPerDay,
	}, nil
}

// # Public Reads

/*
GetPublicBook retrieves a published, non-deleted book with its author byline.

Parameters:
  - context: context.Context
  - bookID: string

Returns:
  - *BookWithAuthor: The public view
  - error: apperr.NotFound for drafts, deleted books, or unknown IDs
*/
func (service *Service) GetPublicBook(context context.Context, bookID string) (*BookWithAuthor, error) {
	return service.repo.FindPublished(context, bookID)
}

/*
Discover returns the filtered public catalogue.

Parameters:
  - context: context.Context
  - filter: DiscoverFilter
  - page: pagination.Page

Returns:
  - []*BookWithAuthor: Published books, most recent first
  - int64: Total row count
  - error: Query failures
*/
func (service *Service) Discover(context context.Context, filter DiscoverFilter, page pagination.Page) ([]*BookWithAuthor, int64, error) {
	return service.repo.ListPublished(context, filter, page)
}

/*
ListByAuthor returns a writer's published books for their public shelf.

Parameters:
  - context: context.Context
  - authorID: string
  - page: pagination.Page

Returns:
  - []*Book: Published books, most recent first
  - int64: Total row count
  - error: Query failures
*/
func (service *Service) ListByAuthor(context context.Context, authorID string, page pagination.Page) ([]*Book, int64, error) {
	return service.repo.ListPublishedByAuthor(context, authorID, page)
}
