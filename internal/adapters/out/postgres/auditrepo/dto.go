// Package auditrepo persists the append-only order transition log. Records
// never change after insertion, so the repository tracks no aggregates.
package auditrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// TransitionDTO represents the database structure for one audit record.
type TransitionDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus int
	ToStatus   int
	Event      int
	Actor      uuid.UUID `gorm:"type:uuid"`
	Lat        *float64
	Lon        *float64
	OccurredAt time.Time
}

// TableName specifies the database table name for transition records.
func (TransitionDTO) TableName() string {
	return "order_transitions"
}

func fromDomain(record order.TransitionRecord) TransitionDTO {
	var lat, lon *float64
	if record.Location != nil {
		latValue := record.Location.Latitude()
		lonValue := record.Location.Longitude()
		lat = &latValue
		lon = &lonValue
	}

	return TransitionDTO{
		ID:         record.ID.Bytes(),
		OrderID:    record.OrderID.Bytes(),
		FromStatus: int(record.From),
		ToStatus:   int(record.To),
		Event:      int(record.Event),
		Actor:      record.Actor.Bytes(),
		Lat:        lat,
		Lon:        lon,
		OccurredAt: record.OccurredAt,
	}
}

func toDomain(dto TransitionDTO) (order.TransitionRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.TransitionRecord{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.TransitionRecord{}, err
	}
	actor, err := kernel.UUIDFromBytes(dto.Actor[:])
	if err != nil {
		return order.TransitionRecord{}, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if pointErr != nil {
			return order.TransitionRecord{}, pointErr
		}
		location = &point
	}

	return order.TransitionRecord{
		ID:         id,
		OrderID:    orderID,
		From:       order.Status(dto.FromStatus),
		To:         order.Status(dto.ToStatus),
		Event:      order.Event(dto.Event),
		Actor:      actor,
		Location:   location,
		OccurredAt: dto.OccurredAt,
	}, nil
}
