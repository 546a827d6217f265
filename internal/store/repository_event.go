package store

import (
	"context"
	"fmt"

	"github.com/fortifile/fortifile/internal/logger"
	"github.com/fortifile/fortifile/models"
)

// eventRepository is the SQLite-backed implementation of [EventRepository].
// The audit trail is append-only from the application's point of view:
// rows are only ever removed wholesale when the owning account is deleted.
type eventRepository struct {
	logger *logger.Logger
	db     DBTX
}

// NewEventRepository constructs an [EventRepository] backed by the provided
// database handle and logger.
func NewEventRepository(db DBTX, logger *logger.Logger) EventRepository {
	logger.Debug().Msg("creating event repository")
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

// AppendEvent records a single audit entry. The description is stored
// verbatim; occurred_at is assigned by the database.
func (r *eventRepository) AppendEvent(ctx context.Context, event models.Event) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, appendEvent, event.Description, event.OwnerID); err != nil {
		log.Err(err).
			Str("func", "*eventRepository.AppendEvent").
			Int64("owner_id", event.OwnerID).
			Msg("error: appending event failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ListEventsByOwner returns the audit entries for ownerID, newest first.
// A non-positive limit returns the full history.
func (r *eventRepository) ListEventsByOwner(ctx context.Context, ownerID int64, limit int) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEventsQuery(ownerID, limit)
	if err != nil {
		log.Err(err).
			Str("func", "*eventRepository.ListEventsByOwner").
			Int64("owner_id", ownerID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*eventRepository.ListEventsByOwner").
			Int64("owner_id", ownerID).
			Msg("failed to execute query for listing events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Event, 0, 32)

	for rows.Next() {
		var event models.Event

		scanErr := rows.Scan(&event.EventID, &event.Description, &event.OccurredAt, &event.OwnerID)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*eventRepository.ListEventsByOwner").
				Int64("owner_id", ownerID).
				Msg("failed to scan event row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return results, nil
}

// DeleteEventsByOwner removes every audit entry owned by ownerID and
// reports the number of rows removed.
func (r *eventRepository) DeleteEventsByOwner(ctx context.Context, ownerID int64) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteEventsByOwner, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "*eventRepository.DeleteEventsByOwner").
			Int64("owner_id", ownerID).
			Msg("error: deleting events failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
