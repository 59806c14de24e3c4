package main

import (
	"errors"
	"log"

	"coursehub-be/internal/config"
	"coursehub-be/internal/model"
	"coursehub-be/pkg/database"

	"gorm.io/gorm"
)

const (
	seedEmail       = "testing@example.com"
	seedDisplayName = "Test User"
)

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.LogLevel(cfg.Database.LogLevel))
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding sample user...")

	err = db.Transaction(func(tx *gorm.DB) error {
		var existing model.User
		err := tx.Where("email = ?", seedEmail).First(&existing).Error
		if err == nil {
			log.Printf("User '%s' already exists, skipping...", seedEmail)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		email := seedEmail
		user := model.User{Email: &email}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.Account{UserId: user.Id}).Error; err != nil {
			return err
		}
		name := seedDisplayName
		return tx.Create(&model.Profile{UserId: user.Id, DisplayName: &name}).Error
	})
	if err != nil {
		log.Fatal("Error: seeding failed:", err)
	}

	log.Println("Seeding completed!")
}
