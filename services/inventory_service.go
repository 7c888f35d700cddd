package services

import (
	"errors"

	"warehouse-app/apperr"
	"warehouse-app/events"
	"warehouse-app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InventoryService is the stock ledger: the only entry point for a
// quantity change that bypasses the order/receiving workflows. It shares
// the never-negative invariant and the ledger contract with those paths.
type InventoryService struct {
	db        *gorm.DB
	logger    *zap.Logger
	publisher EventPublisher
	mailer    *events.Mailer
}

func NewInventoryService(db *gorm.DB, logger *zap.Logger, publisher EventPublisher, mailer *events.Mailer) *InventoryService {
	return &InventoryService{db: db, logger: logger, publisher: publisher, mailer: mailer}
}

// Adjust applies a manual stock correction as one atomic
// load-check-mutate-log step. REMOVE fails with InsufficientStock rather
// than drive the quantity negative. After commit it refreshes the
// product's location occupancy and fires a low-stock alert when the
// product sits at or below its minimum stock level.
func (s *InventoryService) Adjust(productID uint, action string, quantity int, actorID int, note string) (*models.Product, error) {
	if quantity <= 0 {
		return nil, apperr.Validation("quantity must be greater than zero")
	}
	if action != models.InventoryActionAdd && action != models.InventoryActionRemove {
		return nil, apperr.Validation("unknown inventory action: %s", action)
	}

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
			return nil, apperr.NotFound("product %d not found", productID)
		}
		return nil, err
	}

	before := product.Quantity
	change := quantity
	if action == models.InventoryActionRemove {
		if before < quantity {
			tx.Rollback()
			return nil, apperr.InsufficientStock(
				"product %s has %d on hand, cannot remove %d", product.SKU, before, quantity)
		}
		change = -quantity
	}
	after := before + change

	product.Quantity = after
	product.UpdatedBy = actorID
	if err := tx.Save(&product).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := writeInventoryLog(tx, product.ID, action, change, before, after, note, actorID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Everything below is outside the atomic boundary and best-effort.
	if product.LocationID != nil {
		if _, err := recalculateOccupancy(s.db, s.logger, *product.LocationID); err != nil {
			s.logger.Warn("failed to recalculate occupancy after adjustment",
				zap.Uint("location_id", *product.LocationID), zap.Error(err))
		}
	}

	publish(s.publisher, events.EventInventoryUpdated, map[string]interface{}{
		"product_id":      product.ID,
		"sku":             product.SKU,
		"action":          action,
		"quantity_before": before,
		"quantity_after":  after,
		"actor":           actorID,
	})

	if product.IsLowStock() {
		publish(s.publisher, events.EventLowStockAlert, map[string]interface{}{
			"product_id":          product.ID,
			"sku":                 product.SKU,
			"quantity":            after,
			"minimum_stock_level": product.MinimumStockLevel,
		})
		s.mailer.SendLowStockAlert(product.SKU, product.Name, after, product.MinimumStockLevel)
	}

	return &product, nil
}
