// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package bookmark implements a reader's personal bookmark shelf.

A bookmark either marks a whole book (PageIndex is nil) or a specific page
within it. The pair (reader, book, page) is unique, and the nil page is a
distinct key of its own, so a reader can hold one whole-book bookmark plus
any number of page bookmarks for the same book.
*/
package bookmark

import "time"

// Bookmark kinds, derived from PageIndex rather than stored.
const (
	TypeBook = "book"
	TypePage = "page"
)

// Bookmark marks a book, or a page within one, for later reading.
type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	PageIndex *int      `json:"page_index"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Kind reports whether the bookmark targets the whole book or a page.
func (bookmark *Bookmark) Kind() string {
	if bookmark.PageIndex == nil {
		return TypeBook
	}
	return TypePage
}

// BookInfo is the slice of the book a shelf listing needs.
type BookInfo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	CoverImage string `json:"cover_image"`
	AuthorName string `json:"author_name"`
}

// BookmarkWithBook is a bookmark joined with its book for shelf listings.
type BookmarkWithBook struct {
	Bookmark
	Book BookInfo `json:"book"`
}

// Validation field names.
const (
	FieldBookID    = "book_id"
	FieldPageIndex = "page_index"
)
