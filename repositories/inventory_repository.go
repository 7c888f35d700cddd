package repositories

import (
	"warehouse-app/models"

	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db}
}

type StockRow struct {
	ProductID         uint    `json:"product_id"`
	SKU               string  `json:"sku"`
	Name              string  `json:"name"`
	Quantity          int     `json:"quantity"`
	MinimumStockLevel int     `json:"minimum_stock_level"`
	UnitPrice         float64 `json:"unit_price"`
	LocationCode      string  `json:"location_code"`
}

// GetStockList returns the current stock position per product with its
// location code resolved.
func (r *InventoryRepository) GetStockList() ([]StockRow, error) {
	sqlStock := `select p.id as product_id, p.sku, p.name, p.quantity,
	p.minimum_stock_level, p.unit_price,
	coalesce(l.location_code, '') as location_code
	from products p
	left join locations l on p.location_id = l.id
	where p.deleted_at is null
	order by p.sku`

	var rows []StockRow
	if err := r.db.Raw(sqlStock).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// GetLowStockList returns products at or below their reorder point.
func (r *InventoryRepository) GetLowStockList() ([]StockRow, error) {
	sqlStock := `select p.id as product_id, p.sku, p.name, p.quantity,
	p.minimum_stock_level, p.unit_price,
	coalesce(l.location_code, '') as location_code
	from products p
	left join locations l on p.location_id = l.id
	where p.deleted_at is null and p.quantity <= p.minimum_stock_level
	order by p.sku`

	var rows []StockRow
	if err := r.db.Raw(sqlStock).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// GetProductLogs returns the ledger entries for one product, newest first.
func (r *InventoryRepository) GetProductLogs(productID uint, limit int) ([]models.InventoryLog, error) {
	if limit <= 0 {
		limit = 100
	}

	var logs []models.InventoryLog
	if err := r.db.Where("product_id = ?", productID).
		Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}
