package main

import (
	"context"
	"fmt"
	"os"

	"inkscan/config"
	"inkscan/internal/indexer"
	"inkscan/internal/note/repository"
	memosRepo "inkscan/internal/note/repository/memos"
	vaultRepo "inkscan/internal/note/repository/vault"
	"inkscan/pkg/log"
	pkgQdrant "inkscan/pkg/qdrant"
	"inkscan/pkg/voyage"
)

// Rebuilds the qdrant collection from the note store. Run it after changing
// the embedding model, the collection name, or after restoring a vault backup.
//
// Usage: go run scripts/reindex/main.go
// Config resolution is the same as for the services (./config, ., /etc/app/).
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	if cfg.Voyage.APIKey == "" || cfg.Qdrant.URL == "" {
		logger.Fatal(ctx, "voyage.api_key and qdrant.url must be configured for reindexing")
	}

	var repo repository.NoteRepository
	switch cfg.Vault.Backend {
	case "memos":
		memosClient := memosRepo.NewClient(cfg.Memos.URL, cfg.Memos.AccessToken)
		repo = memosRepo.New(memosClient, logger)
	default:
		repo = vaultRepo.New(cfg.Vault.Path, logger)
	}

	embeddingClient, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Voyage API: %v", err)
	}
	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)

	idx := indexer.New(logger, repo, embeddingClient, qdrantClient, cfg.Qdrant.CollectionName, cfg.Qdrant.VectorSize)
	idx.EnsureCollection(ctx)

	logger.Info(ctx, "Starting reindex...")

	embedded, failed, err := idx.ReindexAll(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Reindex aborted: %v", err)
	}

	logger.Infof(ctx, "Reindex complete! %d notes embedded, %d failed.", embedded, failed)
}
