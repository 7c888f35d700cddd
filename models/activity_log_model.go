package models

import (
	"time"

	"warehouse-app/idgen"
	"warehouse-app/types"

	"gorm.io/gorm"
)

const (
	EntityOrder     = "order"
	EntityReceiving = "receiving"
	EntityTask      = "task"
	EntityUser      = "user"
	EntitySupplier  = "supplier"
)

// ActivityLog records who did what to an entity, with before/after JSON
// snapshots. Writes are best-effort: a failure here never rolls back the
// mutation it describes.
type ActivityLog struct {
	ID         types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	EntityType string            `json:"entity_type" gorm:"index:idx_activity_entity"`
	EntityID   uint              `json:"entity_id" gorm:"index:idx_activity_entity"`
	Action     string            `json:"action"`
	OldValue   string            `json:"old_value"`
	NewValue   string            `json:"new_value"`
	CreatedAt  time.Time         `json:"created_at"`
	CreatedBy  int               `json:"created_by"`
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == 0 {
		l.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
