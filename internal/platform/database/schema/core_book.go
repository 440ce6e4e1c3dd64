// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

// Package schema centralizes table and column identifiers for queries that
// are composed dynamically (filtered discovery, joins). Static queries keep
// their SQL inline next to the repository method.
package schema

// CoreBookTable represents the 'core.book' table
type CoreBookTable struct {
	Table                  string
	ID                     string
	UserID                 string
	Slug                   string
	Title                  string
	Subtitle               string
	Description            string
	Synopsis               string
	Content                string
	Genre                  string
	Tags                   string
	CoverImage             string
	Language               string
	License                string
	IsPublished            string
	IsMonetized            string
	Price                  string
	LastSavedAt            string
	PublishedAt            string
	DeletedAt              string
	ScheduledForDeletionAt string
	CreatedAt              string
	UpdatedAt              string
}

// CoreBook is the schema definition for core.book
var CoreBook = CoreBookTable{
	Table:                  "core.book",
	ID:                     "id",
	UserID:                 "userid",
	Slug:                   "slug",
	Title:                  "title",
	Subtitle:               "subtitle",
	Description:            "description",
	Synopsis:               "synopsis",
	Content:                "content",
	Genre:                  "genre",
	Tags:                   "tags",
	CoverImage:             "coverimage",
	Language:               "language",
	License:                "license",
	IsPublished:            "ispublished",
	IsMonetized:            "ismonetized",
	Price:                  "price",
	LastSavedAt:            "lastsavedat",
	PublishedAt:            "publishedat",
	DeletedAt:              "deletedat",
	ScheduledForDeletionAt: "scheduledfordeletionat",
	CreatedAt:              "createdat",
	UpdatedAt:              "updatedat",
}

// Columns returns the full column list in scan order.
func (t CoreBookTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Slug, t.Title, t.Subtitle, t.Description, t.Synopsis,
		t.Content, t.Genre, t.Tags, t.CoverImage, t.Language, t.License,
		t.IsPublished, t.IsMonetized, t.Price, t.LastSavedAt, t.PublishedAt,
		t.DeletedAt, t.ScheduledForDeletionAt, t.CreatedAt, t.UpdatedAt,
	}
}
