// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package bookmark

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
	"github.com/inkwellhq/inkwell/pkg/pagination"
)

// PostgresRepository implements [Repository] on PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a bookmark [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a new bookmark. The kind is stored denormalized so shelf
// queries never recompute it.
func (repository *PostgresRepository) Create(context context.Context, bookmark *Bookmark) error {
	insertQuery := `
		INSERT INTO core.bookmark (id, userid, bookid, pageindex, type, createdat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := repository.pool.Exec(context, insertQuery,
		bookmark.ID,
		bookmark.UserID,
		bookmark.BookID,
		bookmark.PageIndex,
		bookmark.Type,
		bookmark.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "bookmark_create")
	}

	return nil
}

// Exists reports whether the reader already bookmarked the (book, page)
// pair. IS NOT DISTINCT FROM makes the nil page index compare as a key of
// its own instead of matching nothing.
func (repository *PostgresRepository) Exists(context context.Context, userID string, bookID string, pageIndex *int) (bool, error) {
	existsQuery := `
		SELECT EXISTS (
			SELECT 1 FROM core.bookmark
			WHERE userid = $1 AND bookid = $2 AND pageindex IS NOT DISTINCT FROM $3
		)`

	var exists bool
	if err := repository.pool.QueryRow(context, existsQuery, userID, bookID, pageIndex).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "bookmark_exists")
	}

	return exists, nil
}

// Delete removes the reader's bookmark by ID. Constraining on the owner
// keeps one reader from deleting another's bookmark by guessing IDs.
func (repository *PostgresRepository) Delete(context context.Context, bookmarkID string, userID string) error {
	deleteQuery := `DELETE FROM core.bookmark WHERE id = $1 AND userid = $2`

	tag, err := repository.pool.Exec(context, deleteQuery, bookmarkID, userID)
	if err != nil {
		return dberr.Wrap(err, "bookmark_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Bookmark")
	}

	return nil
}

// DeleteByBook removes all of the reader's bookmarks on one book.
func (repository *PostgresRepository) DeleteByBook(context context.Context, userID string, bookID string) (int, error) {
	deleteQuery := `DELETE FROM core.bookmark WHERE userid = $1 AND bookid = $2`

	tag, err := repository.pool.Exec(context, deleteQuery, userID, bookID)
	if err != nil {
		return 0, dberr.Wrap(err, "bookmark_delete_by_book")
	}

	return int(tag.RowsAffected()), nil
}

// ListByUser returns the reader's shelf joined with book and author
// details, newest bookmark first.
func (repository *PostgresRepository) ListByUser(context context.Context, userID string, page pagination.Page) ([]*BookmarkWithBook, int64, error) {
	countQuery := `SELECT COUNT(*) FROM core.bookmark WHERE userid = $1`

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "bookmark_count")
	}

	listQuery := `
		SELECT
			bm.id, bm.userid, bm.bookid, bm.pageindex, bm.type, bm.createdat,
			b.id, b.title, b.slug, b.coverimage, a.penname
		FROM core.bookmark bm
		JOIN core.book b ON b.id = bm.bookid
		JOIN users.account a ON a.id = b.userid
		WHERE bm.userid = $1
		ORDER BY bm.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, listQuery, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "bookmark_list")
	}
	defer rows.Close()

	shelf := make([]*BookmarkWithBook, 0)
	for rows.Next() {
		entry := &BookmarkWithBook{}
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.BookID,
			&entry.PageIndex,
			&entry.Type,
			&entry.CreatedAt,
			&entry.Book.ID,
			&entry.Book.Title,
			&entry.Book.Slug,
			&entry.Book.CoverImage,
			&entry.Book.AuthorName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("bookmark_scan_failed: %w", err)
		}
		shelf = append(shelf, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "bookmark_list")
	}

	return shelf, total, nil
}
