package services

import (
	"errors"
	"strings"

	"warehouse-app/apperr"
	"warehouse-app/events"
	"warehouse-app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LocationService owns location records and the derived occupancy
// read-model. Occupancy is only ever mutated here or inside the receiving
// completion transaction.
type LocationService struct {
	db        *gorm.DB
	logger    *zap.Logger
	publisher EventPublisher
}

func NewLocationService(db *gorm.DB, logger *zap.Logger, publisher EventPublisher) *LocationService {
	return &LocationService{db: db, logger: logger, publisher: publisher}
}

type LocationInput struct {
	Zone     string `json:"zone" validate:"required"`
	Rack     string `json:"rack" validate:"required"`
	Shelf    string `json:"shelf" validate:"required"`
	Bin      string `json:"bin" validate:"required"`
	Capacity *int   `json:"capacity"`
	IsActive *bool  `json:"is_active"`
}

func (s *LocationService) Create(input LocationInput, actorID int) (*models.Location, error) {
	if input.Capacity != nil && *input.Capacity < 0 {
		return nil, apperr.Validation("capacity cannot be negative")
	}

	var existing models.Location
	err := s.db.Where("zone = ? AND rack = ? AND shelf = ? AND bin = ?",
		input.Zone, input.Rack, input.Shelf, input.Bin).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("location %s already exists", existing.LocationCode)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	location := models.Location{
		LocationCode: strings.Join([]string{input.Zone, input.Rack, input.Shelf, input.Bin}, "-"),
		Zone:         input.Zone,
		Rack:         input.Rack,
		Shelf:        input.Shelf,
		Bin:          input.Bin,
		Capacity:     input.Capacity,
		IsActive:     true,
		CreatedBy:    actorID,
		UpdatedBy:    actorID,
	}
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := s.db.Create(&location).Error; err != nil {
		return nil, err
	}

	return &location, nil
}

// UpdateCapacity changes a location's capacity limit. Shrinking below the
// current occupancy is rejected; this is the one point besides assignment
// where the capacity invariant is enforced.
func (s *LocationService) UpdateCapacity(locationID uint, capacity *int, actorID int) (*models.Location, error) {
	if capacity != nil && *capacity < 0 {
		return nil, apperr.Validation("capacity cannot be negative")
	}

	var location models.Location
	if err := s.db.First(&location, locationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("location %d not found", locationID)
		}
		return nil, err
	}

	if capacity != nil && *capacity < location.CurrentOccupancy {
		return nil, apperr.InsufficientStock(
			"capacity %d is below current occupancy %d of location %s",
			*capacity, location.CurrentOccupancy, location.LocationCode)
	}

	location.Capacity = capacity
	location.UpdatedBy = actorID
	if err := s.db.Save(&location).Error; err != nil {
		return nil, err
	}

	return &location, nil
}

// Recalculate rebuilds a location's occupancy from the quantities of the
// non-deleted products assigned to it. Idempotent: with no intervening
// product change, two runs yield the same value.
func (s *LocationService) Recalculate(locationID uint) (int, error) {
	total, err := recalculateOccupancy(s.db, s.logger, locationID)
	if err != nil {
		return 0, err
	}

	publish(s.publisher, events.EventOccupancyUpdated, map[string]interface{}{
		"location_id": locationID,
		"occupancy":   total,
	})

	return total, nil
}

// AssignProduct moves a product to a location. One transaction spans the
// product row, the new location and the previous location (if any), so
// occupancy never disagrees with assignment.
func (s *LocationService) AssignProduct(locationID, productID uint, actorID int) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("product %d not found", productID)
		}
		return err
	}

	var location models.Location
	if err := tx.First(&location, locationID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("location %d not found", locationID)
		}
		return err
	}

	if !location.IsActive {
		tx.Rollback()
		return apperr.Validation("location %s is not active", location.LocationCode)
	}

	if product.LocationID != nil && *product.LocationID == location.ID {
		tx.Rollback()
		return apperr.Conflict("product %s is already at location %s", product.SKU, location.LocationCode)
	}

	if available, limited := location.AvailableCapacity(); limited && available < product.Quantity {
		tx.Rollback()
		return apperr.InsufficientStock(
			"location %s has available capacity %d, product %s needs %d",
			location.LocationCode, available, product.SKU, product.Quantity)
	}

	previousID := product.LocationID
	product.LocationID = &location.ID
	product.UpdatedBy = actorID
	if err := tx.Save(&product).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&models.Location{}).Where("id = ?", location.ID).
		UpdateColumn("current_occupancy", gorm.Expr("current_occupancy + ?", product.Quantity)).Error; err != nil {
		tx.Rollback()
		return err
	}

	if previousID != nil {
		if err := tx.Model(&models.Location{}).Where("id = ?", *previousID).
			UpdateColumn("current_occupancy", gorm.Expr("current_occupancy - ?", product.Quantity)).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	publish(s.publisher, events.EventOccupancyUpdated, map[string]interface{}{
		"location_id": location.ID,
		"product_id":  product.ID,
		"quantity":    product.Quantity,
		"actor":       actorID,
	})

	return nil
}

func (s *LocationService) Get(locationID uint) (*models.Location, error) {
	var location models.Location
	if err := s.db.First(&location, locationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("location %d not found", locationID)
		}
		return nil, err
	}
	return &location, nil
}

func (s *LocationService) List(includeDeleted bool) ([]models.Location, error) {
	db := s.db
	if includeDeleted {
		db = db.Unscoped()
	}

	var locations []models.Location
	if err := db.Order("location_code").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// recalculateOccupancy is shared with the stock ledger, which refreshes
// occupancy after manual adjustments. An over-capacity result is logged as
// a warning but not rejected: occupancy is a derived read-model, the
// invariant is enforced at assignment and capacity-change time.
func recalculateOccupancy(db *gorm.DB, logger *zap.Logger, locationID uint) (int, error) {
	var location models.Location
	if err := db.First(&location, locationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("location %d not found", locationID)
		}
		return 0, err
	}

	var total int
	if err := db.Model(&models.Product{}).Where("location_id = ?", locationID).
		Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}

	if err := db.Model(&models.Location{}).Where("id = ?", locationID).
		UpdateColumn("current_occupancy", total).Error; err != nil {
		return 0, err
	}

	if location.Capacity != nil && total > *location.Capacity {
		logger.Warn("location occupancy exceeds capacity",
			zap.String("location_code", location.LocationCode),
			zap.Int("occupancy", total),
			zap.Int("capacity", *location.Capacity))
	}

	return total, nil
}
