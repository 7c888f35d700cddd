package services

import (
	"testing"

	"warehouse-app/apperr"
	"warehouse-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocationService(t *testing.T) (*LocationService, *capturePublisher) {
	t.Helper()
	db := setupTestDB(t)
	publisher := &capturePublisher{}
	return NewLocationService(db, noopLogger(), publisher), publisher
}

func TestCreateLocationBuildsCodeAndRejectsDuplicatePath(t *testing.T) {
	svc, _ := newLocationService(t)

	location, err := svc.Create(LocationInput{Zone: "A", Rack: "01", Shelf: "02", Bin: "03"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "A-01-02-03", location.LocationCode)
	assert.True(t, location.IsActive)

	_, err = svc.Create(LocationInput{Zone: "A", Rack: "01", Shelf: "02", Bin: "03"}, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = svc.Create(LocationInput{Zone: "A", Rack: "01", Shelf: "02", Bin: "04", Capacity: intPtr(-1)}, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestAssignProductUpdatesOccupancy(t *testing.T) {
	svc, _ := newLocationService(t)
	location := createTestLocation(t, svc.db, "C1", intPtr(100))
	product := createTestProduct(t, svc.db, "SKU-300", 25, 0, 1.0)

	require.NoError(t, svc.AssignProduct(location.ID, product.ID, 1))

	var reloaded models.Location
	require.NoError(t, svc.db.First(&reloaded, location.ID).Error)
	assert.Equal(t, 25, reloaded.CurrentOccupancy)

	var p models.Product
	require.NoError(t, svc.db.First(&p, product.ID).Error)
	require.NotNil(t, p.LocationID)
	assert.Equal(t, location.ID, *p.LocationID)
}

func TestAssignProductRejectsOverCapacity(t *testing.T) {
	svc, _ := newLocationService(t)
	location := createTestLocation(t, svc.db, "C2", intPtr(10))
	resident := createTestProduct(t, svc.db, "SKU-301", 4, 0, 1.0)
	require.NoError(t, svc.AssignProduct(location.ID, resident.ID, 1))

	incoming := createTestProduct(t, svc.db, "SKU-302", 8, 0, 1.0)
	err := svc.AssignProduct(location.ID, incoming.ID, 1)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientStock))

	// Failed assignment leaves occupancy untouched.
	var reloaded models.Location
	require.NoError(t, svc.db.First(&reloaded, location.ID).Error)
	assert.Equal(t, 4, reloaded.CurrentOccupancy)

	var p models.Product
	require.NoError(t, svc.db.First(&p, incoming.ID).Error)
	assert.Nil(t, p.LocationID)
}

func TestAssignProductToSameLocationConflicts(t *testing.T) {
	svc, _ := newLocationService(t)
	location := createTestLocation(t, svc.db, "C3", nil)
	product := createTestProduct(t, svc.db, "SKU-303", 5, 0, 1.0)

	require.NoError(t, svc.AssignProduct(location.ID, product.ID, 1))
	err := svc.AssignProduct(location.ID, product.ID, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestAssignProductMoveAdjustsBothLocations(t *testing.T) {
	svc, _ := newLocationService(t)
	from := createTestLocation(t, svc.db, "C4", nil)
	to := createTestLocation(t, svc.db, "C5", nil)
	product := createTestProduct(t, svc.db, "SKU-304", 6, 0, 1.0)

	require.NoError(t, svc.AssignProduct(from.ID, product.ID, 1))
	require.NoError(t, svc.AssignProduct(to.ID, product.ID, 1))

	var source, target models.Location
	require.NoError(t, svc.db.First(&source, from.ID).Error)
	require.NoError(t, svc.db.First(&target, to.ID).Error)
	assert.Equal(t, 0, source.CurrentOccupancy)
	assert.Equal(t, 6, target.CurrentOccupancy)
}

func TestAssignProductRejectsInactiveLocation(t *testing.T) {
	svc, _ := newLocationService(t)
	location := createTestLocation(t, svc.db, "C6", nil)
	require.NoError(t, svc.db.Model(location).Update("is_active", false).Error)
	product := createTestProduct(t, svc.db, "SKU-305", 1, 0, 1.0)

	err := svc.AssignProduct(location.ID, product.ID, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestRecalculateIsIdempotent(t *testing.T) {
	svc, _ := newLocationService(t)
	location := createTestLocation(t, svc.db, "C7", nil)
	first := createTestProduct(t, svc.db, "SKU-306", 5, 0, 1.0)
	second := createTestProduct(t, svc.db, "SKU-307", 7, 0, 1.0)
	require.NoError(t, svc.db.Model(first).Update("location_id", location.ID).Error)
	require.NoError(t, svc.db.Model(second).Update("location_id", location.ID).Error)

	total, err := svc.Recalculate(location.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, total)

	again, err := svc.Recalculate(location.ID)
	require.NoError(t, err)
	assert.Equal(t, total, again)
}

func TestRecalculateSkipsSoftDeletedProducts(t *testing.T) {
	svc, _ := newLocationService(t)
	location := createTestLocation(t, svc.db, "C8", nil)
	kept := createTestProduct(t, svc.db, "SKU-308", 5, 0, 1.0)
	gone := createTestProduct(t, svc.db, "SKU-309", 9, 0, 1.0)
	require.NoError(t, svc.db.Model(kept).Update("location_id", location.ID).Error)
	require.NoError(t, svc.db.Model(gone).Update("location_id", location.ID).Error)
	require.NoError(t, svc.db.Delete(gone).Error)

	total, err := svc.Recalculate(location.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestRecalculateOverCapacityIsWarnedNotRejected(t *testing.T) {
	svc, _ := newLocationService(t)
	location := createTestLocation(t, svc.db, "C9", intPtr(3))
	product := createTestProduct(t, svc.db, "SKU-310", 10, 0, 1.0)
	require.NoError(t, svc.db.Model(product).Update("location_id", location.ID).Error)

	total, err := svc.Recalculate(location.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	var reloaded models.Location
	require.NoError(t, svc.db.First(&reloaded, location.ID).Error)
	assert.Equal(t, 10, reloaded.CurrentOccupancy)
}

func TestUpdateCapacityRejectsShrinkBelowOccupancy(t *testing.T) {
	svc, _ := newLocationService(t)
	location := createTestLocation(t, svc.db, "C10", intPtr(20))
	product := createTestProduct(t, svc.db, "SKU-311", 8, 0, 1.0)
	require.NoError(t, svc.AssignProduct(location.ID, product.ID, 1))

	_, err := svc.UpdateCapacity(location.ID, intPtr(5), 1)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientStock))

	updated, err := svc.UpdateCapacity(location.ID, intPtr(8), 1)
	require.NoError(t, err)
	require.NotNil(t, updated.Capacity)
	assert.Equal(t, 8, *updated.Capacity)

	// nil lifts the limit entirely.
	unlimited, err := svc.UpdateCapacity(location.ID, nil, 1)
	require.NoError(t, err)
	assert.Nil(t, unlimited.Capacity)
}
