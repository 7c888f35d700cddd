package database

import (
	"log"

	"warehouse-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders creates the initial admin account when the users table is
// empty, so a fresh install can log in.
func RunSeeders(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash seed password: %v", err)
		return
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    "admin@warehouse.local",
		Password: string(hashed),
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}

	log.Println("Seeded admin user: admin@warehouse.local")
}
