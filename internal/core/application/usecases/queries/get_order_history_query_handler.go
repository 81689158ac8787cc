package queries

import (
	"context"
	"database/sql"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads the append-only transition trail.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for history queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the history read, oldest transition first.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			event,
			actor,
			lat,
			lon,
			occurred_at
		FROM order_transitions
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var fromStatus, toStatus, event int
		var actor uuid.UUID
		var lat, lon sql.NullFloat64
		var occurredAt time.Time

		if err = rows.Scan(&fromStatus, &toStatus, &event, &actor, &lat, &lon, &occurredAt); err != nil {
			return nil, err
		}

		actorID, idErr := kernel.UUIDFromBytes(actor[:])
		if idErr != nil {
			return nil, idErr
		}

		var location *kernel.GeoPoint
		if lat.Valid && lon.Valid {
			point, pointErr := kernel.NewGeoPoint(lat.Float64, lon.Float64)
			if pointErr != nil {
				return nil, pointErr
			}
			location = &point
		}

		history = append(history, GetOrderHistoryQueryResponse{
			From:       order.Status(fromStatus),
			To:         order.Status(toStatus),
			Event:      order.Event(event),
			Actor:      actorID,
			Location:   location,
			OccurredAt: occurredAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
