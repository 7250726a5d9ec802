// Package main provides a tool to seed the database with prompts.
//
// It imports a JSON seed file ({"prompts": [...]}) or the built-in sample
// prompts. Imports are idempotent: prompts are matched by ID, and ratings
// already collected survive a re-import. With --reindex the search index is
// rebuilt afterwards, which matters when seeding while the server is down.
//
// Usage:
//
//	go run ./cmd/seed --samples
//	go run ./cmd/seed --file prompts.json --reindex
//	DATABASE_PATH=/tmp/deck.db go run ./cmd/seed --samples
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/promptdeckapp/promptdeck/internal/logger"
	"github.com/promptdeckapp/promptdeck/internal/search"
	"github.com/promptdeckapp/promptdeck/internal/seed"
	"github.com/promptdeckapp/promptdeck/internal/service"
	"github.com/promptdeckapp/promptdeck/internal/store"
)

var (
	seedFile  = flag.String("file", "", "JSON seed file to import")
	samples   = flag.Bool("samples", false, "Import the built-in sample prompts")
	dbFlag    = flag.String("db", "", "Path to the database file (overrides DATABASE_PATH)")
	reindex   = flag.Bool("reindex", false, "Rebuild the search index after importing")
	indexFlag = flag.String("index", "", "Path to the search index directory (overrides SEARCH_INDEX_PATH)")
)

func main() {
	flag.Parse()

	if *seedFile == "" && !*samples && !*reindex {
		log.Fatal("Nothing to do: pass --file, --samples, or --reindex")
	}

	dbPath := *dbFlag
	if dbPath == "" {
		dbPath = os.Getenv("DATABASE_PATH")
	}
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/PromptDeck/promptdeck.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	s, err := store.Open(dbPath, logger.Discard().Logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	seeder := seed.New(s, logger.Discard().Logger)

	total := 0

	if *seedFile != "" {
		count, err := seeder.ImportFile(ctx, *seedFile)
		if err != nil {
			log.Fatalf("Failed to import %s: %v", *seedFile, err)
		}
		fmt.Printf("Imported %d prompts from %s\n", count, *seedFile)
		total += count
	}

	if *samples {
		count, err := seeder.ImportSamples(ctx)
		if err != nil {
			log.Fatalf("Failed to import samples: %v", err)
		}
		fmt.Printf("Imported %d sample prompts\n", count)
		total += count
	}

	if *seedFile != "" || *samples {
		fmt.Printf("\nSeeding complete! %d prompts imported.\n", total)
	}

	if *reindex {
		rebuildIndex(ctx, s)
	}
}

// rebuildIndex reindexes every prompt in the database. The server rebuilds an
// empty index on startup by itself; this path covers seeding into a database
// whose index already has documents.
func rebuildIndex(ctx context.Context, s *store.Store) {
	indexPath := *indexFlag
	if indexPath == "" {
		indexPath = os.Getenv("SEARCH_INDEX_PATH")
	}
	if indexPath == "" {
		indexPath = os.ExpandEnv("$HOME/PromptDeck/search.bleve")
	}

	fmt.Printf("Rebuilding search index at: %s\n", indexPath)

	idx, err := search.NewSearchIndex(search.Options{
		IndexPath: indexPath,
		Logger:    logger.Discard().Logger,
	})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer idx.Close()

	svc := service.NewSearchService(idx, s, logger.Discard().Logger)
	if err := svc.ReindexAll(ctx); err != nil {
		log.Fatalf("Failed to rebuild search index: %v", err)
	}

	docs, err := svc.DocumentCount()
	if err != nil {
		log.Fatalf("Failed to read search index size: %v", err)
	}
	fmt.Printf("Search index rebuilt: %d documents\n", docs)
}
