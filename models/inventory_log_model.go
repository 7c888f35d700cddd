package models

import (
	"time"

	"warehouse-app/idgen"
	"warehouse-app/types"

	"gorm.io/gorm"
)

const (
	InventoryActionAdd    = "ADD"
	InventoryActionRemove = "REMOVE"
	InventoryActionUpdate = "UPDATE"
)

// InventoryLog is the append-only stock ledger. Exactly one row is written
// per atomic quantity change, inside the same transaction as the change.
type InventoryLog struct {
	ID             types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	ProductID      uint              `json:"product_id" gorm:"index"`
	Action         string            `json:"action"`
	QuantityChange int               `json:"quantity_change"`
	QuantityBefore int               `json:"quantity_before"`
	QuantityAfter  int               `json:"quantity_after"`
	Reference      string            `json:"reference"` // order/receiving number or free note
	CreatedAt      time.Time         `json:"created_at"`
	CreatedBy      int               `json:"created_by"`
}

func (l *InventoryLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == 0 {
		l.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
