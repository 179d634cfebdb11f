package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/shop-admin-service/internal/adapter/sanity"
	"github.com/example/shop-admin-service/internal/domain"
)

// Reads product drafts as a JSON array from stdin and creates them in the
// content store. Handy for seeding a fresh dataset.
func main() {
	_ = godotenv.Load()

	client := sanity.NewClient(sanity.Config{
		ProjectID:  getenv("SANITY_PROJECT_ID", ""),
		Dataset:    getenv("SANITY_DATASET", "production"),
		APIVersion: getenv("SANITY_API_VERSION", "2025-07-08"),
		Token:      getenv("SANITY_TOKEN", ""),
	})
	store := sanity.NewStore(client)

	var drafts []domain.ProductDraft
	dec := json.NewDecoder(os.Stdin)
	if err := dec.Decode(&drafts); err != nil {
		log.Fatalf("read json from stdin: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, d := range drafts {
		id, err := store.CreateProduct(ctx, d.Fields())
		if err != nil {
			log.Fatalf("create product %q: %v", d.Name, err)
		}
		log.Printf("created product %q as %s", d.Name, id)
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
