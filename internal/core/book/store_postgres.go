// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/database/schema"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
	"github.com/inkwellhq/inkwell/pkg/pagination"
	"github.com/inkwellhq/inkwell/pkg/query"
)

// bookColumns is the scan-order column list shared by all book lookups.
const bookColumns = `id, userid, slug, title, subtitle, description, synopsis, content, genre, tags,
	coverimage, language, license, ispublished, ismonetized, price,
	lastsavedat, publishedat, deletedat, scheduledfordeletionat, createdat, updatedat`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL book repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// scanBook hydrates a Book from a row carrying the bookColumns order.
func scanBook(row pgx.Row) (*Book, error) {
	b := &Book{}
	err := row.Scan(
		&b.ID, &b.UserID, &b.Slug, &b.Title, &b.Subtitle, &b.Description, &b.Synopsis,
		&b.Content, &b.Genre, &b.Tags, &b.CoverImage, &b.Language, &b.License,
		&b.IsPublished, &b.IsMonetized, &b.Price,
		&b.LastSavedAt, &b.PublishedAt, &b.DeletedAt, &b.ScheduledForDeletionAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

/*
Create persists a new draft into the core.book table.

Parameters:
  - context: context.Context
  - book: *Book

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	const insert = `
		INSERT INTO core.book (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	_, err := repository.pool.Exec(context, insert,
		book.ID, book.UserID, book.Slug, book.Title, book.Subtitle, book.Description, book.Synopsis,
		book.Content, book.Genre, book.Tags, book.CoverImage, book.Language, book.License,
		book.IsPublished, book.IsMonetized, book.Price,
		book.LastSavedAt, book.PublishedAt, book.DeletedAt, book.ScheduledForDeletionAt,
		book.CreatedAt, book.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "book_create")
	}

	return nil
}

/*
FindOwned returns the book with the given ID if it belongs to userID.

Description: Deliberately carries NO deletion-state filter — the lifecycle
operations need to load soft-deleted rows to restore them, and the service
decides per-operation whether a deleted row is acceptable.

Parameters:
  - context: context.Context
  - bookID: string
  - userID: string

Returns:
  - *Book: The owned book, any lifecycle state
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindOwned(context context.Context, bookID, userID string) (*Book, error) {
	findQuery := `
		SELECT ` + bookColumns + `
		FROM core.book
		WHERE id = $1 AND userid = $2`

	book, err := scanBook(repository.pool.QueryRow(context, findQuery, bookID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres_book_repo_find_owned_failed: %w", err)
	}

	return book, nil
}

/*
FindPublished returns a published, non-deleted book joined with its byline.

Parameters:
  - context: context.Context
  - bookID: string

Returns:
  - *BookWithAuthor: The public view
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindPublished(context context.Context, bookID string) (*BookWithAuthor, error) {
	const publicQuery = `
		SELECT b.id, b.userid, b.slug, b.title, b.subtitle, b.description, b.synopsis, b.content, b.genre, b.tags,
		       b.coverimage, b.language, b.license, b.ispublished, b.ismonetized, b.price,
		       b.lastsavedat, b.publishedat, b.deletedat, b.scheduledfordeletionat, b.createdat, b.updatedat,
		       a.id, a.username, a.penname
		FROM core.book b
		JOIN users.account a ON b.userid = a.id
		WHERE b.id = $1 AND b.ispublished = TRUE AND b.deletedat IS NULL`

	result := &BookWithAuthor{}
	err := repository.pool.QueryRow(context, publicQuery, bookID).Scan(
		&result.ID, &result.UserID, &result.Slug, &result.Title, &result.Subtitle, &result.Description, &result.Synopsis,
		&result.Content, &result.Genre, &result.Tags, &result.CoverImage, &result.Language, &result.License,
		&result.IsPublished, &result.IsMonetized, &result.Price,
		&result.LastSavedAt, &result.PublishedAt, &result.DeletedAt, &result.ScheduledForDeletionAt,
		&result.CreatedAt, &result.UpdatedAt,
		&result.Author.ID, &result.Author.Username, &result.Author.PenName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres_book_repo_find_published_failed: %w", err)
	}

	return result, nil
}

/*
ListByOwner returns a writer's books, drafts included.

Parameters:
  - context: context.Context
  - userID: string
  - includeDeleted: bool
  - page: pagination.Page

Returns:
  - []*Book: Newest first
  - int64: Total row count for pagination
  - error: Query failures
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, userID string, includeDeleted bool, page pagination.Page) ([]*Book, int64, error) {
	where := `userid = $1`
	if !includeDeleted {
		where += ` AND deletedat IS NULL`
	}

	listQuery := `
		SELECT ` + bookColumns + `
		FROM core.book
		WHERE ` + where + `
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	countQuery := `SELECT COUNT(*) FROM core.book WHERE ` + where

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_count_owner_failed: %w", err)
	}

	rows, err := repository.pool.Query(context, listQuery, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_list_owner_failed: %w", err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

/*
ListPublished returns the filtered public catalogue with author bylines.

Description: The WHERE clause is composed dynamically from the filter via
[query.Builder]; every fragment is parameterized, never interpolated.

Parameters:
  - context: context.Context
  - filter: DiscoverFilter
  - page: pagination.Page

Returns:
  - []*BookWithAuthor: Most recently published first
  - int64: Total matching rows
  - error: Query failures
*/
func (repository *PostgresRepository) ListPublished(context context.Context, filter DiscoverFilter, page pagination.Page) ([]*BookWithAuthor, int64, error) {
	builder := query.NewBuilder(1)
	if filter.Genre != "" {
		builder.Where("$%d = ANY(b."+schema.CoreBook.Genre+")", filter.Genre)
	}
	if filter.Language != "" {
		builder.Where("b."+schema.CoreBook.Language+" = $%d", filter.Language)
	}
	if filter.Search != "" {
		builder.Where("(b."+schema.CoreBook.Title+" || ' ' || b."+schema.CoreBook.Subtitle+") ILIKE $%d", "%"+filter.Search+"%")
	}

	where := `b.ispublished = TRUE AND b.deletedat IS NULL` + builder.Clause()
	args := builder.Args()

	countQuery := `SELECT COUNT(*) FROM core.book b WHERE ` + where
	var total int64
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_count_published_failed: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT b.id, b.userid, b.slug, b.title, b.subtitle, b.description, b.synopsis, b.content, b.genre, b.tags,
		       b.coverimage, b.language, b.license, b.ispublished, b.ismonetized, b.price,
		       b.lastsavedat, b.publishedat, b.deletedat, b.scheduledfordeletionat, b.createdat, b.updatedat,
		       a.id, a.username, a.penname
		FROM core.book b
		JOIN users.account a ON b.userid = a.id
		WHERE %s
		ORDER BY b.publishedat DESC
		LIMIT $%d OFFSET $%d`, where, builder.NextPos(), builder.NextPos()+1)
	args = append(args, page.Limit, page.Offset())

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_list_published_failed: %w", err)
	}
	defer rows.Close()

	results := make([]*BookWithAuthor, 0)
	for rows.Next() {
		result := &BookWithAuthor{}
		err := rows.Scan(
			&result.ID, &result.UserID, &result.Slug, &result.Title, &result.Subtitle, &result.Description, &result.Synopsis,
			&result.Content, &result.Genre, &result.Tags, &result.CoverImage, &result.Language, &result.License,
			&result.IsPublished, &result.IsMonetized, &result.Price,
			&result.LastSavedAt, &result.PublishedAt, &result.DeletedAt, &result.ScheduledForDeletionAt,
			&result.CreatedAt, &result.UpdatedAt,
			&result.Author.ID, &result.Author.Username, &result.Author.PenName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_book_repo_scan_published_failed: %w", err)
		}
		results = append(results, result)
	}

	return results, total, rows.Err()
}

/*
ListPublishedByAuthor returns a writer's published, non-deleted books.

Parameters:
  - context: context.Context
  - authorID: string
  - page: pagination.Page

Returns:
  - []*Book: Most recently published first
  - int64: Total row count
  - error: Query failures
*/
func (repository *PostgresRepository) ListPublishedByAuthor(context context.Context, authorID string, page pagination.Page) ([]*Book, int64, error) {
	listQuery := `
		SELECT ` + bookColumns + `
		FROM core.book
		WHERE userid = $1 AND ispublished = TRUE AND deletedat IS NULL
		ORDER BY publishedat DESC
		LIMIT $2 OFFSET $3`

	const countQuery = `
		SELECT COUNT(*) FROM core.book
		WHERE userid = $1 AND ispublished = TRUE AND deletedat IS NULL`

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, authorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_count_author_failed: %w", err)
	}

	rows, err := repository.pool.Query(context, listQuery, authorID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_list_author_failed: %w", err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

/*
Update persists all mutable fields of an existing book.

Parameters:
  - context: context.Context
  - book: *Book

Returns:
  - error: Update failures
*/
func (repository *PostgresRepository) Update(context context.Context, book *Book) error {
	const update = `
		UPDATE core.book
		SET slug = $2, title = $3, subtitle = $4, description = $5, synopsis = $6, content = $7,
		    genre = $8, tags = $9, coverimage = $10, language = $11, license = $12,
		    ispublished = $13, ismonetized = $14, price = $15,
		    lastsavedat = $16, publishedat = $17, deletedat = $18, scheduledfordeletionat = $19,
		    updatedat = $20
		WHERE id = $1`

	_, err := repository.pool.Exec(context, update,
		book.ID, book.Slug, book.Title, book.Subtitle, book.Description, book.Synopsis, book.Content,
		book.Genre, book.Tags, book.CoverImage, book.Language, book.License,
		book.IsPublished, book.IsMonetized, book.Price,
		book.LastSavedAt, book.PublishedAt, book.DeletedAt, book.ScheduledForDeletionAt,
		book.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_book_repo_update_failed: %w", err)
	}

	return nil
}

/*
Delete permanently removes a book row. Bookmarks pointing at the book are
removed by the ON DELETE CASCADE constraint.

Parameters:
  - context: context.Context
  - bookID: string

Returns:
  - error: Deletion failures
*/
func (repository *PostgresRepository) Delete(context context.Context, bookID string) error {
	const deleteQuery = "DELETE FROM core.book WHERE id = $1"
	_, err := repository.pool.Exec(context, deleteQuery, bookID)
	if err != nil {
		return fmt.Errorf("postgres_book_repo_delete_failed: %w", err)
	}
	return nil
}

/*
CountPublishedSince counts the user's books published at or after an instant.

Description: No deletion-state filter on purpose — a published-then-deleted
book still consumed one of the writer's daily publish slots.

Parameters:
  - context: context.Context
  - userID: string
  - since: time.Time

Returns:
  - int: Matching row count
  - error: Query failures
*/
func (repository *PostgresRepository) CountPublishedSince(context context.Context, userID string, since time.Time) (int, error) {
	const countQuery = `
		SELECT COUNT(*) FROM core.book
		WHERE userid = $1 AND publishedat >= $2`

	var count int
	if err := repository.pool.QueryRow(context, countQuery, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_book_repo_count_published_since_failed: %w", err)
	}

	return count, nil
}

/*
ListExpired returns soft-deleted books past their scheduled deletion time.

Parameters:
  - context: context.Context
  - now: time.Time

Returns:
  - []*Book: Purge candidates
  - error: Query failures
*/
func (repository *PostgresRepository) ListExpired(context context.Context, now time.Time) ([]*Book, error) {
	expiredQuery := `
		SELECT ` + bookColumns + `
		FROM core.book
		WHERE deletedat IS NOT NULL AND scheduledfordeletionat < $1
		ORDER BY scheduledfordeletionat ASC`

	rows, err := repository.pool.Query(context, expiredQuery, now)
	if err != nil {
		return nil, fmt.Errorf("postgres_book_repo_list_expired_failed: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

// collectBooks drains a bookColumns-shaped result set.
func collectBooks(rows pgx.Rows) ([]*Book, error) {
	books := make([]*Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_book_repo_scan_failed: %w", err)
		}
		books = append(books, book)
	}
	return books, rows.Err()
}
