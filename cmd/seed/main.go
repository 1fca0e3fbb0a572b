package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"stagepass/internal/catalog"
	"stagepass/internal/shared/config"
	"stagepass/internal/shared/database"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	clean := flag.Bool("clean", false, "truncate booking and ledger tables before seeding")
	passphrase := flag.String("hash-passphrase", "", "print a bcrypt hash for the given admin passphrase and exit")
	flag.Parse()

	if *passphrase != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*passphrase), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash passphrase: %v", err)
		}
		fmt.Println(string(hash))
		return
	}

	fmt.Println("🌱 Starting StagePass Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	if *clean {
		fmt.Println("\n🧹 Cleaning database...")
		if err := seeder.CleanDatabase(); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
		fmt.Println("✅ Database cleaned successfully")
	}

	fmt.Println("\n🌱 Seeding catalog...")
	if err := seeder.SeedCatalog(); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	fmt.Println("✅ Catalog seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"booking_merch_lines",
		"reserved_seats",
		"bookings",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedCatalog replaces the merchandise catalog and inventory limits with
// the default storefront lineup.
func (s *Seeder) SeedCatalog() error {
	ctx := context.Background()

	repo := catalog.NewRepository(s.db.GetPostgreSQL())

	products := catalog.DefaultProducts()
	limits := catalog.DefaultInventoryLimits()

	if err := repo.ReplaceCatalog(ctx, products, limits); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}

	fmt.Printf("  Seeded %d products, %d inventory limits\n", len(products), len(limits))
	return nil
}
