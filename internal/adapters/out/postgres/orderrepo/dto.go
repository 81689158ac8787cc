// Package orderrepo provides data transfer objects and mapping functions for
// order persistence, converting between the order aggregate and its
// relational representation.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by status and worker for the pool listing and the capacity count.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Category          string     `gorm:"type:varchar(32)"`
	Status            int        `gorm:"index"`
	WorkerID          *uuid.UUID `gorm:"type:uuid;index"`
	PickupLat         float64
	PickupLon         float64
	DeliveryLat       float64
	DeliveryLon       float64
	GrossValue        decimal.Decimal `gorm:"type:numeric(14,2)"`
	VerificationCode  string          `gorm:"type:varchar(6)"`
	GraceDeadline     *time.Time
	PayoutReleased    bool
	PaymentOnDelivery bool
	PaymentRejected   bool
	IssueNote         string
	CreatedAt         time.Time     `gorm:"autoCreateTime"`
	LineItems         []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one order line in its own table.
type LineItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for order lines.
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var workerID *uuid.UUID
	if id := aggregate.Worker(); id != nil {
		raw := id.Bytes()
		workerID = &raw
	}

	lineItems := make([]LineItemDTO, 0, len(aggregate.LineItems()))
	for _, item := range aggregate.LineItems() {
		lineItems = append(lineItems, LineItemDTO{
			ID:        uuid.New(),
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		Category:          string(aggregate.Category()),
		Status:            int(aggregate.Status()),
		WorkerID:          workerID,
		PickupLat:         aggregate.Pickup().Latitude(),
		PickupLon:         aggregate.Pickup().Longitude(),
		DeliveryLat:       aggregate.Delivery().Latitude(),
		DeliveryLon:       aggregate.Delivery().Longitude(),
		GrossValue:        aggregate.GrossValue().Decimal(),
		VerificationCode:  string(aggregate.VerificationCode()),
		GraceDeadline:     aggregate.GraceDeadline(),
		PayoutReleased:    aggregate.PayoutReleased(),
		PaymentOnDelivery: aggregate.PaymentOnDelivery(),
		PaymentRejected:   aggregate.PaymentRejected(),
		IssueNote:         aggregate.IssueNote(),
		LineItems:         lineItems,
	}
}

// toDomain converts a database DTO back to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var workerID *kernel.UUID
	if dto.WorkerID != nil {
		wID, workerErr := kernel.UUIDFromBytes((*dto.WorkerID)[:])
		if workerErr != nil {
			return nil, workerErr
		}
		workerID = &wID
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLon)
	if err != nil {
		return nil, err
	}
	delivery, err := kernel.NewGeoPoint(dto.DeliveryLat, dto.DeliveryLon)
	if err != nil {
		return nil, err
	}

	lineItems := make([]order.LineItem, 0, len(dto.LineItems))
	for _, itemDTO := range dto.LineItems {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		unitPrice, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewLineItem(productID, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		lineItems = append(lineItems, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		Category:          order.Category(dto.Category),
		Status:            order.Status(dto.Status),
		WorkerID:          workerID,
		Pickup:            pickup,
		Delivery:          delivery,
		LineItems:         lineItems,
		GrossValue:        kernel.RestoreMoney(dto.GrossValue),
		VerificationCode:  order.VerificationCode(dto.VerificationCode),
		GraceDeadline:     dto.GraceDeadline,
		PayoutReleased:    dto.PayoutReleased,
		PaymentOnDelivery: dto.PaymentOnDelivery,
		PaymentRejected:   dto.PaymentRejected,
		IssueNote:         dto.IssueNote,
	})
}
