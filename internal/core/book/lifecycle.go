// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package book

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
)

// # Lifecycle Transitions
//
// The state machine per book is:
//
//	Active -> (SoftDelete) -> SoftDeleted -> (Restore) -> Active
//	SoftDeleted -> (PurgeExpired, time-triggered) -> gone
//
// Purge is terminal; everything else is reversible.

/*
SoftDelete moves an owned, active book into the soft-deleted state.

Description: Stamps DeletedAt = now and schedules the permanent purge at
now + grace period. The book disappears from every public and owner listing
but can be restored until the purge runs.

Parameters:
  - context: context.Context
  - userID: string
  - bookID: string
  - now: time.Time

Returns:
  - *DeletionReceipt: The deletion and purge timestamps
  - error: apperr.NotFound if absent, foreign, or already deleted
*/
func (service *Service) SoftDelete(context context.Context, userID, bookID string, now time.Time) (*DeletionReceipt, error) {

	target, err := service.repo.FindOwned(context, bookID, userID)
	if err != nil {
		return nil, err
	}
	if target.IsDeleted() {
		return nil, apperr.NotFoundMsg("Book not found or already deleted")
	}

	deletedAt := now
	scheduledAt := now.Add(DeletionGracePeriod)
	target.DeletedAt = &deletedAt
	target.ScheduledForDeletionAt = &scheduledAt
	target.UpdatedAt = now

	if err := service.repo.Update(context, target); err != nil {
		return nil, fmt.Errorf("book_service_soft_delete_failed: %w", err)
	}

	service.logger.Info("book_soft_deleted",
		slog.String("book_id", bookID),
		slog.String("user_id", userID),
		slog.Time("purge_scheduled_at", scheduledAt),
	)

	return &DeletionReceipt{
		DeletedAt:              deletedAt,
		ScheduledForDeletionAt: scheduledAt,
	}, nil
}

/*
Restore returns a soft-deleted book to its prior state.

Description: Clears the deletion timestamps and nothing else — a book that
was published before deletion comes back published, a draft comes back as a
draft.

Parameters:
  - context: context.Context
  - userID: string
  - bookID: string

Returns:
  - *Book: The restored book
  - error: apperr.NotFound if absent, foreign, or not deleted
*/
func (service *Service) Restore(context context.Context, userID, bookID string) (*Book, error) {

	target, err := service.repo.FindOwned(context, bookID, userID)
	if err != nil {
		return nil, err
	}
	if !target.IsDeleted() {
		return nil, apperr.NotFoundMsg("Book not found or not deleted")
	}

	target.DeletedAt = nil
	target.ScheduledForDeletionAt = nil

	if err := service.repo.Update(context, target); err != nil {
		return nil, fmt.Errorf("book_service_restore_failed: %w", err)
	}

	service.logger.Info("book_restored",
		slog.String("book_id", bookID),
		slog.String("user_id", userID),
	)

	return target, nil
}

/*
PurgeExpired permanently removes every soft-deleted book whose scheduled
deletion time has passed.

Description: Runs to completion independent of per-book failures: a failing
deletion is logged and the batch continues. The operation is idempotent —
a book purged by an earlier or concurrent run is simply absent from the
query result.

Parameters:
  - context: context.Context
  - now: time.Time

Returns:
  - int: Number of books purged in this run
  - error: Only listing failures; individual deletions never abort the batch
*/
func (service *Service) PurgeExpired(context context.Context, now time.Time) (int, error) {

	expired, err := service.repo.ListExpired(context, now)
	if err != nil {
		return 0, fmt.Errorf("book_service_purge_list_failed: %w", err)
	}

	purged := 0
	for _, target := range expired {
		if err := service.repo.Delete(context, target.ID); err != nil {
			// Log-and-continue: one bad row must not block the batch.
			service.logger.Error("book_purge_delete_failed",
				slog.String("book_id", target.ID),
				slog.Any("error", err),
			)
			continue
		}
		purged++
	}

	if purged > 0 || len(expired) > 0 {
		service.logger.Info("book_purge_completed",
			slog.Int("purged", purged),
			slog.Int("eligible", len(expired)),
		)
	}

	return purged, nil
}

/*
ListPendingPurge returns the soft-deleted books currently awaiting purge.

Description: Read-only moderation view for administrators. Passing now
lists everything already past its schedule; the books still inside their
grace period are not included.

Parameters:
  - context: context.Context
  - now: time.Time

Returns:
  - []*Book: Books eligible for the next purge run
  - error: Query failures
*/
func (service *Service) ListPendingPurge(context context.Context, now time.Time) ([]*Book, error) {
	return service.repo.ListExpired(context, now)
}
