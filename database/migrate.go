package database

import (
	"warehouse-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Supplier{},
		&models.Customer{},
		&models.Product{},
		&models.Location{},
		&models.Order{},
		&models.OrderItem{},
		&models.Receiving{},
		&models.ReceivingItem{},
		&models.Task{},
		&models.InventoryLog{},
		&models.ActivityLog{},
		&models.DocumentSequence{},
	)
}
