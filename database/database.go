package database

import (
	"log"
	"os"

	"sellerhub-api/internal/domain/accounts"
	"sellerhub-api/internal/domain/plans"
	"sellerhub-api/internal/domain/sellers"
	"sellerhub-api/internal/domain/team"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&accounts.Account{},
		&plans.Subscription{},
		&sellers.Entitlement{},
		&team.Membership{},
		&team.Request{},
		&team.VirtualSeller{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}
}
