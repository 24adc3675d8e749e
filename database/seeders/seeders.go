package seeders

import (
	"log"

	"umsjevari_go/config"
	"umsjevari_go/database"
	"umsjevari_go/models"
	"umsjevari_go/utils"
)

// SeedAll runs all seeders. Safe to call repeatedly; each seeder skips when
// its table already has rows.
func SeedAll() {
	if database.DB == nil {
		log.Println("Database not available, skipping seeding")
		return
	}

	log.Println("Starting database seeding...")

	if config.AppConfig.SeedAdmin {
		SeedAdmin()
	}

	log.Println("Database seeding completed successfully!")
}

// SeedAdmin creates the initial office admin account
func SeedAdmin() {
	var count int64
	database.DB.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		log.Println("Admin accounts already seeded, skipping...")
		return
	}

	hashed, err := utils.HashPassword("admin123")
	if err != nil {
		log.Printf("Failed to hash default admin password: %v", err)
		return
	}

	admin := models.Admin{
		Username: "admin",
		Password: hashed,
		Role:     "owner",
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin account: %v", err)
		return
	}

	log.Println("Seeded default admin account (change the password before going live)")
}
