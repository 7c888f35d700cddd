package services

import (
	"testing"

	"warehouse-app/apperr"
	"warehouse-app/events"
	"warehouse-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryService(t *testing.T) (*InventoryService, *capturePublisher) {
	t.Helper()
	db := setupTestDB(t)
	publisher := &capturePublisher{}
	return NewInventoryService(db, noopLogger(), publisher, nil), publisher
}

func TestAdjustAddIncreasesQuantityAndWritesLedger(t *testing.T) {
	svc, publisher := newInventoryService(t)
	product := createTestProduct(t, svc.db, "SKU-001", 10, 2, 5.0)

	updated, err := svc.Adjust(product.ID, models.InventoryActionAdd, 5, 1, "cycle count correction")
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Quantity)

	var logs []models.InventoryLog
	require.NoError(t, svc.db.Where("product_id = ?", product.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, models.InventoryActionAdd, logs[0].Action)
	assert.Equal(t, 5, logs[0].QuantityChange)
	assert.Equal(t, 10, logs[0].QuantityBefore)
	assert.Equal(t, 15, logs[0].QuantityAfter)
	assert.Equal(t, "cycle count correction", logs[0].Reference)
	assert.NotZero(t, logs[0].ID)

	require.Len(t, publisher.named(events.EventInventoryUpdated), 1)
}

func TestAdjustRemoveDecreasesQuantity(t *testing.T) {
	svc, _ := newInventoryService(t)
	product := createTestProduct(t, svc.db, "SKU-002", 10, 2, 5.0)

	updated, err := svc.Adjust(product.ID, models.InventoryActionRemove, 4, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Quantity)

	var entry models.InventoryLog
	require.NoError(t, svc.db.Where("product_id = ?", product.ID).First(&entry).Error)
	assert.Equal(t, -4, entry.QuantityChange)
}

func TestAdjustRemoveBelowZeroFailsAndLeavesNoLedgerEntry(t *testing.T) {
	svc, publisher := newInventoryService(t)
	product := createTestProduct(t, svc.db, "SKU-003", 3, 0, 5.0)

	_, err := svc.Adjust(product.ID, models.InventoryActionRemove, 4, 1, "")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientStock))

	var reloaded models.Product
	require.NoError(t, svc.db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 3, reloaded.Quantity)

	var count int64
	require.NoError(t, svc.db.Model(&models.InventoryLog{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, publisher.events)
}

func TestAdjustRejectsInvalidInput(t *testing.T) {
	svc, _ := newInventoryService(t)
	product := createTestProduct(t, svc.db, "SKU-004", 3, 0, 5.0)

	_, err := svc.Adjust(product.ID, models.InventoryActionAdd, 0, 1, "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Adjust(product.ID, "INCREMENT", 1, 1, "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Adjust(9999, models.InventoryActionAdd, 1, 1, "")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestAdjustFiresLowStockAlertAtOrBelowMinimum(t *testing.T) {
	svc, publisher := newInventoryService(t)
	product := createTestProduct(t, svc.db, "SKU-005", 5, 10, 5.0)

	_, err := svc.Adjust(product.ID, models.InventoryActionRemove, 2, 1, "")
	require.NoError(t, err)

	alerts := publisher.named(events.EventLowStockAlert)
	require.Len(t, alerts, 1)
	assert.Equal(t, "SKU-005", alerts[0].Data["sku"])
	assert.Equal(t, 3, alerts[0].Data["quantity"])
}

func TestAdjustNoLowStockAlertAboveMinimum(t *testing.T) {
	svc, publisher := newInventoryService(t)
	product := createTestProduct(t, svc.db, "SKU-006", 50, 10, 5.0)

	_, err := svc.Adjust(product.ID, models.InventoryActionRemove, 2, 1, "")
	require.NoError(t, err)
	assert.Empty(t, publisher.named(events.EventLowStockAlert))
}

func TestAdjustRefreshesLocationOccupancy(t *testing.T) {
	svc, _ := newInventoryService(t)
	location := createTestLocation(t, svc.db, "A1", nil)
	product := createTestProduct(t, svc.db, "SKU-007", 10, 0, 5.0)
	require.NoError(t, svc.db.Model(product).Update("location_id", location.ID).Error)

	_, err := svc.Adjust(product.ID, models.InventoryActionAdd, 7, 1, "")
	require.NoError(t, err)

	var reloaded models.Location
	require.NoError(t, svc.db.First(&reloaded, location.ID).Error)
	assert.Equal(t, 17, reloaded.CurrentOccupancy)
}
