package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetClaimableOrdersQueryHandler lists the open pool from the orders table.
type GetClaimableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetClaimableOrdersQueryHandler creates a handler for pool listings.
func NewGetClaimableOrdersQueryHandler(db *gorm.DB) GetClaimableOrdersQueryHandler {
	return GetClaimableOrdersQueryHandler{db: db}
}

// Handle executes the pool listing, oldest order first.
func (h GetClaimableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetClaimableOrdersQuery,
) ([]GetClaimableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetClaimableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			category,
			pickup_lat,
			pickup_lon,
			delivery_lat,
			delivery_lon,
			gross_value
		FROM orders
		WHERE status = ? AND worker_id IS NULL
		ORDER BY created_at
	`, order.Pending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var category string
		var pickupLat, pickupLon, deliveryLat, deliveryLon float64
		var grossValue decimal.Decimal

		if err = rows.Scan(
			&id, &category,
			&pickupLat, &pickupLon, &deliveryLat, &deliveryLon,
			&grossValue,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		pickup, pickupErr := kernel.NewGeoPoint(pickupLat, pickupLon)
		if pickupErr != nil {
			return nil, pickupErr
		}
		delivery, deliveryErr := kernel.NewGeoPoint(deliveryLat, deliveryLon)
		if deliveryErr != nil {
			return nil, deliveryErr
		}

		orders = append(orders, GetClaimableOrdersQueryResponse{
			ID:         orderID,
			Category:   order.Category(category),
			Pickup:     pickup,
			Delivery:   delivery,
			GrossValue: kernel.RestoreMoney(grossValue),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
