// cmd/seed/main.go
//
// Seeds the development project with an admin account and a demo catalog.
// Safe to re-run: existing data is left alone.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	outfs "storefront/internal/adapters/out/firestore"
	"storefront/internal/application/usecase"
	custdom "storefront/internal/domain/customer"
	itemdom "storefront/internal/domain/item"
	"storefront/internal/infra/config"
	firestoreinfra "storefront/internal/infra/firestore"
)

type seedItem struct {
	name        string
	description string
	category    string
	price       string
	quantity    int
}

var demoItems = []seedItem{
	{"Laptop", "15.6 inch laptop with 16GB RAM and 512GB SSD", "Electronics", "15999.99", 10},
	{"Wireless Headphones", "Over-ear noise cancelling headphones", "Electronics", "2499.00", 15},
	{"Cotton T-Shirt", "Plain crew-neck t-shirt, 100% cotton", "Clothing", "299.99", 50},
	{"The Great Adventure", "Bestselling adventure novel, paperback", "Books", "189.50", 30},
	{"Leather Wallet", "Slim genuine leather wallet", "Accessories", "749.00", 20},
	{"Coffee Maker", "12-cup drip coffee maker with timer", "Home & Kitchen", "1299.00", 8},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := config.Load()

	fsClient, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		log.Fatalf("[seed] firestore init failed: %v", err)
	}
	defer func() { _ = fsClient.Close() }()

	seedAdmin(ctx, outfs.NewCustomerRepositoryFS(fsClient.Client))
	seedItems(ctx, outfs.NewItemRepositoryFS(fsClient.Client))

	log.Printf("[seed] done")
}

func seedAdmin(ctx context.Context, repo custdom.Repository) {
	email := getenvDefault("ADMIN_EMAIL", "admin@storefront.dev")
	password := getenvDefault("ADMIN_PASSWORD", "admin123")

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("[seed] admin lookup failed: %v", err)
	}
	if existing != nil {
		log.Printf("[seed] admin %s already exists, skipping", email)
		return
	}

	admin, err := custdom.New(uuid.NewString(), "Administrator", email, usecase.HashPassword(password), true, time.Now().UTC())
	if err != nil {
		log.Fatalf("[seed] admin build failed: %v", err)
	}
	if err := repo.Insert(ctx, admin); err != nil {
		log.Fatalf("[seed] admin insert failed: %v", err)
	}
	log.Printf("[seed] admin created: %s", email)
}

func seedItems(ctx context.Context, repo itemdom.Repository) {
	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("[seed] item list failed: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("[seed] catalog has %d item(s), skipping demo items", len(existing))
		return
	}

	for _, s := range demoItems {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			log.Fatalf("[seed] bad price %q: %v", s.price, err)
		}

		it, err := itemdom.New(uuid.NewString(), s.name, s.description, s.category, price, s.quantity, "")
		if err != nil {
			log.Fatalf("[seed] item build failed (%s): %v", s.name, err)
		}
		if err := repo.Insert(ctx, it); err != nil {
			log.Fatalf("[seed] item insert failed (%s): %v", s.name, err)
		}
		log.Printf("[seed] item created: %s (%s)", s.name, s.category)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
