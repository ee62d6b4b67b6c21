package main

import (
	"context"
	"encoding/json"
	"log"

	"pmportal/internal/model"
	"pmportal/internal/storage"
)

// Seeds the configured storage backend with the mock collections, so a
// fresh local/redis/s3 backend starts with the same data the stores would
// seed on first run. Run with the same STORAGE_* env vars as the server.
func main() {
	ctx := context.Background()

	store, err := storage.NewFromEnv(ctx)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	collections := map[string]any{
		storage.KeyAccounts:  model.MockAccounts(),
		storage.KeyDocuments: model.MockDocuments(),
		storage.KeyMissions:  model.MockMissions(),
	}

	for key, value := range collections {
		data, err := json.Marshal(value)
		if err != nil {
			log.Fatalf("failed to encode %s: %v", key, err)
		}
		if err := store.Save(ctx, key, data); err != nil {
			log.Fatalf("failed to write %s: %v", key, err)
		}
		log.Printf("seeded %s", key)
	}
}
