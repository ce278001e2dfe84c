// Command seed populates the catalog database with a default set of brands
// and categories for local development. Safe to re-run; documents that would
// violate the unique name index are skipped.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ahmedwebmail/online-shop/internal/config"
	"github.com/ahmedwebmail/online-shop/internal/domain"
	"github.com/ahmedwebmail/online-shop/pkg/database"
	"github.com/ahmedwebmail/online-shop/pkg/logger"
	slugify "github.com/ahmedwebmail/online-shop/pkg/slug"
)

const defaultLogo = "https://avatars.githubusercontent.com/u/97165289"

var brandNames = []string{
	"Sony", "Dell", "HP", "Apple", "Samsung", "Lenovo", "Asus", "Acer",
	"Microsoft", "Intel", "AMD", "Nvidia", "Logitech", "Toshiba",
	"Panasonic", "LG", "Philips", "Canon", "Epson", "Fujitsu",
}

var categoryNames = []string{
	"Electronics", "Home Appliances", "Sports", "Fashion",
	"Beauty & Personal Care", "Automotive", "Books", "Toys & Games",
	"Health & Wellness", "Furniture", "Groceries", "Jewelry", "Shoes",
	"Watches", "Musical Instruments", "Office Supplies", "Garden & Outdoor",
	"Pet Supplies", "Baby Products", "Travel & Luggage",
}

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New("catalog-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	mongoCfg := database.DefaultMongoConfig()
	mongoCfg.URI = cfg.MongoURI
	mongoCfg.Database = cfg.MongoDatabase

	client, err := database.NewMongoClient(ctx, mongoCfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.DisconnectMongo(client); err != nil {
			log.Error("disconnect error", slog.String("error", err.Error()))
		}
	}()

	db := client.Database(cfg.MongoDatabase)

	logo := defaultLogo
	brands := make([]any, 0, len(brandNames))
	now := time.Now().UTC()
	for _, name := range brandNames {
		b := domain.NewBrand(name, slugify.Generate(name), &logo)
		b.Touch(now)
		brands = append(brands, b)
	}
	inserted, err := insertAll(ctx, db.Collection("brands"), brands)
	if err != nil {
		return fmt.Errorf("seed brands: %w", err)
	}
	log.Info("brands seeded", slog.Int("inserted", inserted), slog.Int("total", len(brands)))

	categories := make([]any, 0, len(categoryNames))
	for _, name := range categoryNames {
		c := domain.NewCategory(name, slugify.Generate(name))
		c.Touch(now)
		categories = append(categories, c)
	}
	inserted, err = insertAll(ctx, db.Collection("categories"), categories)
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	log.Info("categories seeded", slog.Int("inserted", inserted), slog.Int("total", len(categories)))

	return nil
}

// insertAll inserts docs one at a time so duplicate names from a previous
// run are skipped rather than aborting the batch.
func insertAll(ctx context.Context, coll *mongo.Collection, docs []any) (int, error) {
	inserted := 0
	for _, doc := range docs {
		_, err := coll.InsertOne(ctx, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
