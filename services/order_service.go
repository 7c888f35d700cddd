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

// orderTransitions is the fulfillment workflow graph. Any edge not listed
// here is rejected.
var orderTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusPicking, models.OrderStatusCancelled},
	models.OrderStatusPicking:   {models.OrderStatusPacked, models.OrderStatusCancelled},
	models.OrderStatusPacked:    {models.OrderStatusShipped},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

// deletableOrderStatuses: shipped and delivered orders are immutable
// history and can never be deleted.
var deletableOrderStatuses = []string{
	models.OrderStatusPending,
	models.OrderStatusPicking,
	models.OrderStatusPacked,
	models.OrderStatusCancelled,
}

type OrderService struct {
	db        *gorm.DB
	logger    *zap.Logger
	publisher EventPublisher
}

func NewOrderService(db *gorm.DB, logger *zap.Logger, publisher EventPublisher) *OrderService {
	return &OrderService{db: db, logger: logger, publisher: publisher}
}

type OrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type CreateOrderInput struct {
	CustomerID      uint             `json:"customer_id" validate:"required"`
	AssignedStaffID *uint            `json:"assigned_staff_id"`
	Notes           string           `json:"notes"`
	Items           []OrderItemInput `json:"items" validate:"required,dive"`
}

// Create validates stock availability at creation time but does NOT
// reserve or deduct it. A race between creation and shipment is possible
// and is resolved by the re-check inside the shipped transition.
func (s *OrderService) Create(input CreateOrderInput, actorID int) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperr.Validation("order must have at least one item")
	}

	seen := make(map[uint]bool, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperr.Validation("item quantity must be greater than zero")
		}
		if seen[item.ProductID] {
			return nil, apperr.Validation("duplicate product %d in order items", item.ProductID)
		}
		seen[item.ProductID] = true
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var customer models.Customer
	if err := tx.First(&customer, input.CustomerID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("customer %d not found", input.CustomerID)
		}
		return nil, err
	}

	order := models.Order{
		CustomerID:      customer.ID,
		Status:          models.OrderStatusPending,
		AssignedStaffID: input.AssignedStaffID,
		Notes:           input.Notes,
		CreatedBy:       actorID,
		UpdatedBy:       actorID,
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

		if product.Quantity < item.Quantity {
			tx.Rollback()
			return nil, apperr.InsufficientStock(
				"product %s has %d on hand, order needs %d", product.SKU, product.Quantity, item.Quantity)
		}

		subtotal := product.UnitPrice * float64(item.Quantity)
		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.UnitPrice,
			Subtotal:  subtotal,
			CreatedBy: actorID,
			UpdatedBy: actorID,
		})
		order.TotalAmount += subtotal
	}

	seqRepo := repositories.NewSequenceRepository(tx)
	orderNumber, err := seqRepo.NextDocumentNumber(repositories.OrderPrefix)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	order.OrderNumber = orderNumber

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logActivity(s.db, s.logger, models.EntityOrder, order.ID, "created", nil, order, actorID)
	publish(s.publisher, events.EventOrderCreated, map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"customer_id":  order.CustomerID,
		"total_amount": order.TotalAmount,
		"actor":        actorID,
	})

	return &order, nil
}

// TransitionStatus moves an order along the workflow graph. The shipped
// transition deducts stock for every line item inside one transaction:
// either all N products are decremented and N ledger entries written, or
// none are.
func (s *OrderService) TransitionStatus(orderID uint, newStatus string, actorID int) (*models.Order, error) {
	if _, known := orderTransitions[newStatus]; !known {
		return nil, apperr.Validation("unknown order status: %s", newStatus)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order %d not found", orderID)
		}
		return nil, err
	}

	oldStatus := order.Status
	if !slices.Contains(orderTransitions[oldStatus], newStatus) {
		tx.Rollback()
		return nil, apperr.InvalidTransition(
			"order %s cannot move from %s to %s", order.OrderNumber, oldStatus, newStatus)
	}

	shippedLocations := make(map[uint]struct{})
	if newStatus == models.OrderStatusShipped {
		var items []models.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		for _, item := range items {
			// Stock may have moved since order creation; re-check here.
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				tx.Rollback()
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperr.NotFound("product %d not found", item.ProductID)
				}
				return nil, err
			}

			if product.Quantity < item.Quantity {
				tx.Rollback()
				return nil, apperr.InsufficientStock(
					"product %s has %d on hand, order %s needs %d",
					product.SKU, product.Quantity, order.OrderNumber, item.Quantity)
			}

			before := product.Quantity
			product.Quantity = before - item.Quantity
			product.UpdatedBy = actorID
			if err := tx.Save(&product).Error; err != nil {
				tx.Rollback()
				return nil, err
			}

			if err := writeInventoryLog(tx, product.ID, models.InventoryActionRemove,
				-item.Quantity, before, product.Quantity, order.OrderNumber, actorID); err != nil {
				tx.Rollback()
				return nil, err
			}

			if product.LocationID != nil {
				shippedLocations[*product.LocationID] = struct{}{}
			}
		}
	}

	order.Status = newStatus
	order.UpdatedBy = actorID
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Shipment changed stock for located products; refresh their
	// locations' occupancy outside the atomic boundary, best-effort.
	for locationID := range shippedLocations {
		if _, err := recalculateOccupancy(s.db, s.logger, locationID); err != nil {
			s.logger.Warn("failed to recalculate occupancy after shipment",
				zap.Uint("location_id", locationID), zap.Error(err))
		}
	}

	logActivity(s.db, s.logger, models.EntityOrder, order.ID, "status_change",
		map[string]string{"status": oldStatus},
		map[string]string{"status": newStatus}, actorID)
	publish(s.publisher, events.EventOrderStatusUpdated, map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"old_status":   oldStatus,
		"new_status":   newStatus,
		"actor":        actorID,
	})

	return &order, nil
}

// Delete soft-deletes an order. Shipped and delivered orders are immutable
// history and are never deletable.
func (s *OrderService) Delete(orderID uint, actorID int) error {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order %d not found", orderID)
		}
		return err
	}

	if !slices.Contains(deletableOrderStatuses, order.Status) {
		return apperr.Forbidden("order %s is %s and cannot be deleted", order.OrderNumber, order.Status)
	}

	if err := s.db.Model(&order).Update("deleted_by", actorID).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&order).Error; err != nil {
		return err
	}

	logActivity(s.db, s.logger, models.EntityOrder, order.ID, "deleted", order, nil, actorID)
	return nil
}

func (s *OrderService) Get(orderID uint, includeDeleted bool) (*models.Order, error) {
	db := s.db
	if includeDeleted {
		db = db.Unscoped()
	}

	var order models.Order
	if err := db.Preload("Items").Preload("Customer").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order %d not found", orderID)
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) List(includeDeleted bool) ([]models.Order, error) {
	db := s.db
	if includeDeleted {
		db = db.Unscoped()
	}

	var orders []models.Order
	if err := db.Preload("Items").Preload("Customer").
		Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
