package models

import "gorm.io/gorm"

const (
	OrderStatusPending   = "pending"
	OrderStatusPicking   = "picking"
	OrderStatusPacked    = "packed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	gorm.Model
	OrderNumber     string      `json:"order_number" gorm:"unique"`
	CustomerID      uint        `json:"customer_id"`
	Customer        Customer    `json:"customer" gorm:"foreignKey:CustomerID"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount     float64     `json:"total_amount" gorm:"default:0"`
	Status          string      `json:"status" gorm:"default:'pending'"`
	AssignedStaffID *uint       `json:"assigned_staff_id"`
	Notes           string      `json:"notes"`
	CreatedBy       int
	UpdatedBy       int
	DeletedBy       int
}

type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"` // snapshot at order creation
	Subtotal  float64 `json:"subtotal"`
	CreatedBy int
	UpdatedBy int
}
