package models

import "gorm.io/gorm"

const (
	ReceivingStatusPending   = "pending"
	ReceivingStatusCompleted = "completed"
	ReceivingStatusCancelled = "cancelled"
)

type Receiving struct {
	gorm.Model
	ReceivingNumber string          `json:"receiving_number" gorm:"unique"`
	SupplierID      uint            `json:"supplier_id"`
	Supplier        Supplier        `json:"supplier" gorm:"foreignKey:SupplierID"`
	Items           []ReceivingItem `json:"items" gorm:"foreignKey:ReceivingID"`
	TotalAmount     float64         `json:"total_amount" gorm:"default:0"`
	Status          string          `json:"status" gorm:"default:'pending'"`
	Notes           string          `json:"notes"`
	CreatedBy       int
	UpdatedBy       int
	DeletedBy       int
}

type ReceivingItem struct {
	gorm.Model
	ReceivingID uint    `json:"receiving_id"`
	ProductID   uint    `json:"product_id"`
	Quantity    int     `json:"quantity"`
	UnitCost    float64 `json:"unit_cost"` // snapshot at receiving creation
	Subtotal    float64 `json:"subtotal"`
	CreatedBy   int
	UpdatedBy   int
}
