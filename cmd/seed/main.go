package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/sahilchouksey/college-directory/config"
	"github.com/sahilchouksey/college-directory/database"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	// Initialize database connection using GORM
	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	gormDB := store.GetDB().(*gorm.DB)

	// Run seeds
	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("College Directory - Database Seeding")
	fmt.Println(separator)
	fmt.Println()

	if err := database.RunSeeds(gormDB); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("🎉 Seeding completed successfully!")
	fmt.Println(separator)
}
