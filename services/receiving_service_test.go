package services

import (
	"fmt"
	"testing"
	"time"

	"warehouse-app/apperr"
	"warehouse-app/events"
	"warehouse-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReceivingService(t *testing.T) (*ReceivingService, *capturePublisher) {
	t.Helper()
	db := setupTestDB(t)
	publisher := &capturePublisher{}
	return NewReceivingService(db, noopLogger(), publisher), publisher
}

func TestCreateReceiving(t *testing.T) {
	svc, _ := newReceivingService(t)
	supplier := createTestSupplier(t, svc.db, "SUP-001", true)
	product := createTestProduct(t, svc.db, "SKU-200", 0, 0, 1.0)

	receiving, err := svc.Create(CreateReceivingInput{
		SupplierID: supplier.ID,
		Items:      []ReceivingItemInput{{ProductID: product.ID, Quantity: 20, UnitCost: 0.8}},
	}, 1)
	require.NoError(t, err)

	today := time.Now().Format("20060102")
	assert.Equal(t, fmt.Sprintf("RCV-%s-00001", today), receiving.ReceivingNumber)
	assert.Equal(t, models.ReceivingStatusPending, receiving.Status)
	assert.Equal(t, 16.0, receiving.TotalAmount)

	// Stock does not move until completion.
	var reloaded models.Product
	require.NoError(t, svc.db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 0, reloaded.Quantity)
}

func TestCreateReceivingRejectsInactiveSupplier(t *testing.T) {
	svc, _ := newReceivingService(t)
	supplier := createTestSupplier(t, svc.db, "SUP-002", false)
	product := createTestProduct(t, svc.db, "SKU-201", 0, 0, 1.0)

	_, err := svc.Create(CreateReceivingInput{
		SupplierID: supplier.ID,
		Items:      []ReceivingItemInput{{ProductID: product.ID, Quantity: 5}},
	}, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(CreateReceivingInput{
		SupplierID: 9999,
		Items:      []ReceivingItemInput{{ProductID: product.ID, Quantity: 5}},
	}, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestReceivingCompletionIncrementsStockLedgerAndOccupancy(t *testing.T) {
	svc, publisher := newReceivingService(t)
	supplier := createTestSupplier(t, svc.db, "SUP-003", true)
	location := createTestLocation(t, svc.db, "B1", nil)
	product := createTestProduct(t, svc.db, "SKU-202", 3, 0, 1.0)
	require.NoError(t, svc.db.Model(product).Update("location_id", location.ID).Error)
	require.NoError(t, svc.db.Model(location).Update("current_occupancy", 3).Error)

	receiving, err := svc.Create(CreateReceivingInput{
		SupplierID: supplier.ID,
		Items:      []ReceivingItemInput{{ProductID: product.ID, Quantity: 12, UnitCost: 1.0}},
	}, 1)
	require.NoError(t, err)

	_, err = svc.TransitionStatus(receiving.ID, models.ReceivingStatusCompleted, 1)
	require.NoError(t, err)

	var reloadedProduct models.Product
	require.NoError(t, svc.db.First(&reloadedProduct, product.ID).Error)
	assert.Equal(t, 15, reloadedProduct.Quantity)

	var entry models.InventoryLog
	require.NoError(t, svc.db.Where("product_id = ?", product.ID).First(&entry).Error)
	assert.Equal(t, models.InventoryActionAdd, entry.Action)
	assert.Equal(t, 12, entry.QuantityChange)
	assert.Equal(t, 3, entry.QuantityBefore)
	assert.Equal(t, 15, entry.QuantityAfter)
	assert.Equal(t, receiving.ReceivingNumber, entry.Reference)

	var reloadedLocation models.Location
	require.NoError(t, svc.db.First(&reloadedLocation, location.ID).Error)
	assert.Equal(t, 15, reloadedLocation.CurrentOccupancy)

	require.Len(t, publisher.named(events.EventReceivingCompleted), 1)
}

func TestReceivingTransitionGraph(t *testing.T) {
	svc, _ := newReceivingService(t)
	supplier := createTestSupplier(t, svc.db, "SUP-004", true)
	product := createTestProduct(t, svc.db, "SKU-203", 0, 0, 1.0)

	receiving, err := svc.Create(CreateReceivingInput{
		SupplierID: supplier.ID,
		Items:      []ReceivingItemInput{{ProductID: product.ID, Quantity: 1}},
	}, 1)
	require.NoError(t, err)

	_, err = svc.TransitionStatus(receiving.ID, models.ReceivingStatusCompleted, 1)
	require.NoError(t, err)

	// completed is terminal; a second completion must not double-count.
	_, err = svc.TransitionStatus(receiving.ID, models.ReceivingStatusCompleted, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidTransition))

	var reloaded models.Product
	require.NoError(t, svc.db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 1, reloaded.Quantity)

	_, err = svc.TransitionStatus(receiving.ID, "reopened", 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestReceivingDeleteRules(t *testing.T) {
	svc, _ := newReceivingService(t)
	supplier := createTestSupplier(t, svc.db, "SUP-005", true)
	product := createTestProduct(t, svc.db, "SKU-204", 0, 0, 1.0)

	completed, err := svc.Create(CreateReceivingInput{
		SupplierID: supplier.ID,
		Items:      []ReceivingItemInput{{ProductID: product.ID, Quantity: 1}},
	}, 1)
	require.NoError(t, err)
	_, err = svc.TransitionStatus(completed.ID, models.ReceivingStatusCompleted, 1)
	require.NoError(t, err)

	err = svc.Delete(completed.ID, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	pending, err := svc.Create(CreateReceivingInput{
		SupplierID: supplier.ID,
		Items:      []ReceivingItemInput{{ProductID: product.ID, Quantity: 1}},
	}, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(pending.ID, 1))

	_, err = svc.Get(pending.ID, false)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
