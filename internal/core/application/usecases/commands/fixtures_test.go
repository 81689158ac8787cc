package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/worker"

	"github.com/stretchr/testify/require"
)

func testMoney(t *testing.T, value string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(value)
	require.NoError(t, err)
	return m
}

func testPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func testLineItems(t *testing.T) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), 2, testMoney(t, "5000.00"))
	require.NoError(t, err)
	return []order.LineItem{item}
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), order.CategoryStandard,
		testPoint(t, 41.0082, 28.9784), testPoint(t, 41.0400, 28.9900),
		testLineItems(t), false,
	)
	require.NoError(t, err)
	return o
}

func restoredOrder(t *testing.T, status order.Status, workerID *kernel.UUID, mutate func(*order.RestoreOrderParams)) *order.Order {
	t.Helper()
	params := order.RestoreOrderParams{
		ID:               kernel.NewUUID(),
		Category:         order.CategoryStandard,
		Status:           status,
		WorkerID:         workerID,
		Pickup:           testPoint(t, 41.0082, 28.9784),
		Delivery:         testPoint(t, 41.0400, 28.9900),
		LineItems:        testLineItems(t),
		GrossValue:       testMoney(t, "10000.00"),
		VerificationCode: "123456",
	}
	if mutate != nil {
		mutate(&params)
	}
	o, err := order.RestoreOrder(params)
	require.NoError(t, err)
	return o
}

func deliveredOrder(t *testing.T, workerID kernel.UUID, graceDeadline time.Time) *order.Order {
	t.Helper()
	return restoredOrder(t, order.Delivered, &workerID, func(p *order.RestoreOrderParams) {
		p.GraceDeadline = &graceDeadline
		p.PayoutReleased = true
	})
}

func courierWorker(t *testing.T, capacity int) *worker.Worker {
	t.Helper()
	w, err := worker.NewWorker(kernel.NewUUID(), "Ayşe", worker.RoleFastDelivery, capacity)
	require.NoError(t, err)
	return w
}
