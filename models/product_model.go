package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	SKU               string  `json:"sku" gorm:"unique"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Quantity          int     `json:"quantity" gorm:"default:0"`
	MinimumStockLevel int     `json:"minimum_stock_level" gorm:"default:0"`
	UnitPrice         float64 `json:"unit_price" gorm:"default:0"`
	CategoryID        *uint   `json:"category_id"`
	SupplierID        *uint   `json:"supplier_id"`
	LocationID        *uint   `json:"location_id"`
	Remarks           string  `json:"remarks"`
	CreatedBy         int
	UpdatedBy         int
	DeletedBy         int
}

// IsLowStock reports whether the product sits at or below its reorder point.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinimumStockLevel
}
