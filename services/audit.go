package services

import (
	"encoding/json"
	"fmt"
	"time"

	"warehouse-app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventPublisher is the fire-and-forget notification channel the engine
// publishes change events to. Implementations must never block on or fail
// a business mutation.
type EventPublisher interface {
	Publish(event string, data map[string]interface{})
}

func publish(p EventPublisher, event string, data map[string]interface{}) {
	if p != nil {
		p.Publish(event, data)
	}
}

// writeInventoryLog appends one ledger entry for a quantity change. It runs
// inside the caller's transaction: if the entry cannot be written the whole
// mutation aborts, so ledger and stock never disagree.
func writeInventoryLog(tx *gorm.DB, productID uint, action string, change, before, after int, reference string, actor int) error {
	entry := models.InventoryLog{
		ProductID:      productID,
		Action:         action,
		QuantityChange: change,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reference:      reference,
		CreatedAt:      time.Now(),
		CreatedBy:      actor,
	}
	return tx.Create(&entry).Error
}

// logActivity appends an activity trail entry after the owning transaction
// has committed. Best-effort: failures are logged and swallowed, a
// successful mutation is never undone because of its audit record.
func logActivity(db *gorm.DB, logger *zap.Logger, entityType string, entityID uint, action string, oldValue, newValue interface{}, actor int) {
	entry := models.ActivityLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		OldValue:   toJSON(oldValue),
		NewValue:   toJSON(newValue),
		CreatedAt:  time.Now(),
		CreatedBy:  actor,
	}

	if err := db.Create(&entry).Error; err != nil {
		logger.Warn("failed to write activity log",
			zap.String("entity_type", entityType),
			zap.Uint("entity_id", entityID),
			zap.String("action", action),
			zap.Error(err))
	}
}

func toJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
