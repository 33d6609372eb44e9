package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	eventDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/event"
	storeDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/store"
	userDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"check_ins", "order_items", "orders", "payments", "event_registrations", "events", "products", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		now := time.Now()

		accounts := []userDatamodel.User{
			{
				AnweshaID: "ANW-000001", FirstName: "Fest", LastName: "Admin",
				Email: "admin@anwesha.live", PasswordHash: string(hash),
				Role: userDatamodel.RoleAdmin, IsVerified: true, ProfileDone: true,
				VerifiedAt: &now,
			},
			{
				AnweshaID: "ANW-000002", FirstName: "Gate", LastName: "Operator",
				Email: "operator@anwesha.live", PasswordHash: string(hash),
				Role: userDatamodel.RoleOperator, IsVerified: true, ProfileDone: true,
				VerifiedAt: &now,
			},
		}
		for _, u := range accounts {
			var exists int64
			db.Model(&userDatamodel.User{}).Where("email = ?", u.Email).Count(&exists)
			if exists > 0 {
				fmt.Println("user already exists:", u.Email)
				continue
			}
			if err := db.Create(&u).Error; err != nil {
				log.Fatalf("failed to seed user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		sampleEvents := []eventDatamodel.Event{
			{
				Name: "Robowars", Slug: "robowars", Category: "tech",
				Venue: "Main Arena", Description: "Combat robotics championship",
				StartsAt: now.Add(30 * 24 * time.Hour), EndsAt: now.Add(30*24*time.Hour + 4*time.Hour),
				FeePaise: 50000, IsPublished: true,
			},
			{
				Name: "Nocturnals", Slug: "nocturnals", Category: "cultural",
				Venue: "Open Grounds", Description: "All-night music festival",
				StartsAt: now.Add(31 * 24 * time.Hour), EndsAt: now.Add(31*24*time.Hour + 8*time.Hour),
				FeePaise: 0, IsPublished: true,
			},
		}
		for _, e := range sampleEvents {
			var exists int64
			db.Model(&eventDatamodel.Event{}).Where("slug = ?", e.Slug).Count(&exists)
			if exists > 0 {
				continue
			}
			if err := db.Create(&e).Error; err != nil {
				log.Fatalf("failed to seed event %s: %v", e.Slug, err)
			}
			fmt.Println("Seeded event:", e.Slug)
		}

		products := []storeDatamodel.Product{
			{Name: "Anwesha Hoodie", Description: "Official fest hoodie", PricePaise: 79900, Stock: 100, IsActive: true},
			{Name: "Anwesha Tee", Description: "Official fest t-shirt", PricePaise: 29900, Stock: 250, IsActive: true},
		}
		for _, p := range products {
			var exists int64
			db.Model(&storeDatamodel.Product{}).Where("name = ?", p.Name).Count(&exists)
			if exists > 0 {
				continue
			}
			if err := db.Create(&p).Error; err != nil {
				log.Fatalf("failed to seed product %s: %v", p.Name, err)
			}
			fmt.Println("Seeded product:", p.Name)
		}

		fmt.Println("Seeding complete")
	},
}
