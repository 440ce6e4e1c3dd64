// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package book implements the publishing core of the Inkwell platform.

It owns the full lifecycle of a manuscript: drafting, the publish policy
gate (banned titles, minimum length, daily rate limit), soft-deletion with a
grace period, restore, and the scheduled permanent purge.

# Architecture

  - Entities: Book, BookWithAuthor (join view).
  - Policy: pure validation rules, separated from orchestration.
  - Service: orchestrates drafts, publishing, and lifecycle transitions.
  - Repository: abstracted persistence contract implemented on PostgreSQL.

# Deletion Model

Deletion state is carried entirely by the two nullable timestamps: a book is
soft-deleted iff DeletedAt is set, and ScheduledForDeletionAt is always
DeletedAt plus the grace period. There is no separate boolean flag, so an
inconsistent combination (flag set, timestamp missing) cannot be stored.
*/
package book

import "time"

// # Domain Entities

// Book represents a manuscript in any lifecycle state.
type Book struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Slug   string `json:"slug,omitempty"`

	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Description string   `json:"description"`
	Synopsis    string   `json:"synopsis,omitempty"`
	Content     string   `json:"content,omitempty"`
	Genre       []string `json:"genre"`
	Tags        []string `json:"tags"`
	CoverImage  string   `json:"cover_image,omitempty"`
	Language    string   `json:"language"`
	License     string   `json:"license"`

	IsPublished bool     `json:"is_published"`
	IsMonetized bool     `json:"is_monetized"`
	Price       *float64 `json:"price,omitempty"`

	LastSavedAt            time.Time  `json:"last_saved_at"`
	PublishedAt            *time.Time `json:"published_at,omitempty"`
	DeletedAt              *time.Time `json:"deleted_at,omitempty"`
	ScheduledForDeletionAt *time.Time `json:"scheduled_for_deletion_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDeleted reports whether the book is in the soft-deleted state.
func (b *Book) IsDeleted() bool {
	return b.DeletedAt != nil
}

// AuthorInfo is the byline attached to a book in public listings.
type AuthorInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	PenName  string `json:"pen_name"`
}

// BookWithAuthor joins a book with its owning writer's display info.
type BookWithAuthor struct {
	Book
	Author AuthorInfo `json:"author"`
}

// DeletionReceipt is returned by a successful soft-delete so the client can
// display the restore deadline.
type DeletionReceipt struct {
	DeletedAt              time.Time `json:"deleted_at"`
	ScheduledForDeletionAt time.Time `json:"scheduled_for_deletion_at"`
}

// PublishLimit reports a writer's standing against the daily publish cap.
type PublishLimit struct {
	Count     int `json:"count"`
	Remaining int `json:"remaining"`
	Limit     int `json:"limit"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldContent     = "content"
	FieldGenre       = "genre"
	FieldPrice       = "price"
)
