package services

import (
	"errors"

	"warehouse-app/apperr"
	"warehouse-app/events"
	"warehouse-app/models"
	"warehouse-app/repositories"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var receivingTransitions = map[string][]string{
	models.ReceivingStatusPending:   {models.ReceivingStatusCompleted, models.ReceivingStatusCancelled},
	models.ReceivingStatusCompleted: {},
	models.ReceivingStatusCancelled: {},
}

var deletableReceivingStatuses = []string{
	models.ReceivingStatusPending,
	models.ReceivingStatusCancelled,
}

type ReceivingService struct {
	db        *gorm.DB
	logger    *zap.Logger
	publisher EventPublisher
}

func NewReceivingService(db *gorm.DB, logger *zap.Logger, publisher EventPublisher) *ReceivingService {
	return &ReceivingService{db: db, logger: logger, publisher: publisher}
}

type ReceivingItemInput struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	UnitCost  float64 `json:"unit_cost" validate:"min=0"`
}

type CreateReceivingInput struct {
	SupplierID uint                 `json:"supplier_id" validate:"required"`
	Notes      string               `json:"notes"`
	Items      []ReceivingItemInput `json:"items" validate:"required,dive"`
}

// Create records an inbound receipt against an active supplier. Inventory
// does not move until the receiving is completed.
func (s *ReceivingService) Create(input CreateReceivingInput, actorID int) (*models.Receiving, error) {
	if len(input.Items) == 0 {
		return nil, apperr.Validation("receiving must have at least one item")
	}

	seen := make(map[uint]bool, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperr.Validation("item quantity must be greater than zero")
		}
		if seen[item.ProductID] {
			return nil, apperr.Validation("duplicate product %d in receiving items", item.ProductID)
		}
		seen[item.ProductID] = true
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var supplier models.Supplier
	if err := tx.First(&supplier, input.SupplierID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("supplier %d not found", input.SupplierID)
		}
		return nil, err
	}
	if !supplier.IsActive {
		tx.Rollback()
		return nil, apperr.Validation("supplier %s is not active", supplier.SupplierCode)
	}

	receiving := models.Receiving{
		SupplierID: supplier.ID,
		Status:     models.ReceivingStatusPending,
		Notes:      input.Notes,
		CreatedBy:  actorID,
		UpdatedBy:  actorID,
	}

	for _, item := range input.Items {
		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("product %d not found", item.ProductID)
			}
			return nil, err
		}

		subtotal := item.UnitCost * float64(item.Quantity)
		receiving.Items = append(receiving.Items, models.ReceivingItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			Subtotal:  subtotal,
			CreatedBy: actorID,
			UpdatedBy: actorID,
		})
		receiving.TotalAmount += subtotal
	}

	seqRepo := repositories.NewSequenceRepository(tx)
	receivingNumber, err := seqRepo.NextDocumentNumber(repositories.ReceivingPrefix)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	receiving.ReceivingNumber = receivingNumber

	if err := tx.Create(&receiving).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logActivity(s.db, s.logger, models.EntityReceiving, receiving.ID, "created", nil, receiving, actorID)

	return &receiving, nil
}

// TransitionStatus moves a receiving along its workflow. The completed
// transition increments stock for every received item and, when the
// product has an assigned location, bumps that location's occupancy in
// the same transaction so stock and occupancy never disagree.
func (s *ReceivingService) TransitionStatus(receivingID uint, newStatus string, actorID int) (*models.Receiving, error) {
	if _, known := receivingTransitions[newStatus]; !known {
		return nil, apperr.Validation("unknown receiving status: %s", newStatus)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var receiving models.Receiving
	if err := tx.First(&receiving, receivingID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("receiving %d not found", receivingID)
		}
		return nil, err
	}

	oldStatus := receiving.Status
	if !slices.Contains(receivingTransitions[oldStatus], newStatus) {
		tx.Rollback()
		return nil, apperr.InvalidTransition(
			"receiving %s cannot move from %s to %s", receiving.ReceivingNumber, oldStatus, newStatus)
	}

	if newStatus == models.ReceivingStatusCompleted {
		var items []models.ReceivingItem
		if err := tx.Where("receiving_id = ?", receiving.ID).Find(&items).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				tx.Rollback()
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperr.NotFound("product %d not found", item.ProductID)
				}
				return nil, err
			}

			before := product.Quantity
			product.Quantity = before + item.Quantity
			product.UpdatedBy = actorID
			if err := tx.Save(&product).Error; err != nil {
				tx.Rollback()
				return nil, err
			}

			if err := writeInventoryLog(tx, product.ID, models.InventoryActionAdd,
				item.Quantity, before, product.Quantity, receiving.ReceivingNumber, actorID); err != nil {
				tx.Rollback()
				return nil, err
			}

			if product.LocationID != nil {
				if err := tx.Model(&models.Location{}).Where("id = ?", *product.LocationID).
					UpdateColumn("current_occupancy", gorm.Expr("current_occupancy + ?", item.Quantity)).Error; err != nil {
					tx.Rollback()
					return nil, err
				}
			}
		}
	}

	receiving.Status = newStatus
	receiving.UpdatedBy = actorID
	if err := tx.Save(&receiving).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logActivity(s.db, s.logger, models.EntityReceiving, receiving.ID, "status_change",
		map[string]string{"status": oldStatus},
		map[string]string{"status": newStatus}, actorID)

	if newStatus == models.ReceivingStatusCompleted {
		publish(s.publisher, events.EventReceivingCompleted, map[string]interface{}{
			"receiving_id":     receiving.ID,
			"receiving_number": receiving.ReceivingNumber,
			"supplier_id":      receiving.SupplierID,
			"actor":            actorID,
		})
	}

	return &receiving, nil
}

// Delete soft-deletes a receiving. Completed receivings are immutable
// history.
func (s *ReceivingService) Delete(receivingID uint, actorID int) error {
	var receiving models.Receiving
	if err := s.db.First(&receiving, receivingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("receiving %d not found", receivingID)
		}
		return err
	}

	if !slices.Contains(deletableReceivingStatuses, receiving.Status) {
		return apperr.Forbidden("receiving %s is %s and cannot be deleted",
			receiving.ReceivingNumber, receiving.Status)
	}

	if err := s.db.Model(&receiving).Update("deleted_by", actorID).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&receiving).Error; err != nil {
		return err
	}

	logActivity(s.db, s.logger, models.EntityReceiving, receiving.ID, "deleted", receiving, nil, actorID)
	return nil
}

func (s *ReceivingService) Get(receivingID uint, includeDeleted bool) (*models.Receiving, error) {
	db := s.db
	if includeDeleted {
		db = db.Unscoped()
	}

	var receiving models.Receiving
	if err := db.Preload("Items").Preload("Supplier").First(&receiving, receivingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("receiving %d not found", receivingID)
		}
		return nil, err
	}
	return &receiving, nil
}

func (s *ReceivingService) List(includeDeleted bool) ([]models.Receiving, error) {
	db := s.db
	if includeDeleted {
		db = db.Unscoped()
	}

	var receivings []models.Receiving
	if err := db.Preload("Items").Preload("Supplier").
		Order("created_at desc").Find(&receivings).Error; err != nil {
		return nil, err
	}
	return receivings, nil
}
