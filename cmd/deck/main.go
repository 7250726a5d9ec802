// Package main provides the PromptDeck client, a terminal front end for the
// prompt library.
//
// Favorites and collections live in a local Badger store, so the client works
// offline. The listing comes from a PromptDeck server; when none is reachable
// the built-in sample prompts are shown instead.
//
// Usage:
//
//	deck browse [--category writing] [--difficulty beginner] [--featured] [--q text] [--top] [--html page.html]
//	deck fav add|rm <prompt-id>
//	deck fav ls|clear
//	deck col create <name> [description]
//	deck col ls | show <id> | rm <id>
//	deck col add <id> <prompt-id> | drop <id> <prompt-id>
//	deck discover [--timeout 2s]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/promptdeckapp/promptdeck/internal/catalog"
	"github.com/promptdeckapp/promptdeck/internal/domain"
	"github.com/promptdeckapp/promptdeck/internal/library"
	"github.com/promptdeckapp/promptdeck/internal/mdns"
	"github.com/promptdeckapp/promptdeck/internal/persist"
	"github.com/promptdeckapp/promptdeck/internal/render"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "browse":
		runBrowse(os.Args[2:])
	case "fav":
		runFav(os.Args[2:])
	case "col":
		runCol(os.Args[2:])
	case "discover":
		runDiscover(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `PromptDeck client

Commands:
  browse    List prompts from the server (or samples when offline)
  fav       Manage favorites: add, rm, ls, clear
  col       Manage collections: create, ls, show, rm, add, drop
  discover  Find PromptDeck servers on the local network

Environment:
  CATALOG_URL       Server base URL (default http://localhost:8080)
  CLIENT_DATA_DIR   Local state directory (default ~/PromptDeck/client)
  CLIENT_NAMESPACE  Local state key prefix (default promptdeck)`)
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// cliLogger surfaces warnings and errors on stderr; routine logs stay quiet.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// openLibrary opens local client state. Falls back to memory-only state when
// the local store cannot be opened.
func openLibrary() (*library.Library, func()) {
	dataDir := envOr("CLIENT_DATA_DIR", os.ExpandEnv("$HOME/PromptDeck/client"))
	namespace := envOr("CLIENT_NAMESPACE", "promptdeck")

	adapter := persist.Open(dataDir, namespace, cliLogger())
	lib := library.New(adapter, cliLogger())

	return lib, func() {
		if err := adapter.Close(); err != nil {
			log.Printf("Failed to close local state: %v", err)
		}
	}
}

func requireArg(args []string, index int, name string) string {
	if len(args) <= index || args[index] == "" {
		log.Fatalf("Missing %s", name)
	}
	return args[index]
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-1] + "…"
}

func runBrowse(args []string) {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	server := fs.String("server", envOr("CATALOG_URL", "http://localhost:8080"), "PromptDeck server base URL")
	category := fs.String("category", "", "Filter by category")
	difficulty := fs.String("difficulty", "", "Filter by difficulty")
	featured := fs.Bool("featured", false, "Only featured prompts")
	query := fs.String("q", "", "Filter by title or description text")
	top := fs.Bool("top", false, "Sort by rating, highest first")
	htmlOut := fs.String("html", "", "Write the rendered page to this file ('-' for stdout)")
	fs.Parse(args)

	lib, closeLib := openLibrary()
	defer closeLib()

	cat := catalog.New(*server, 10*time.Second, cliLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	cat.LoadPrompts(ctx)

	f := catalog.Filter{
		Category:   *category,
		Difficulty: *difficulty,
		Query:      *query,
	}
	if *featured {
		t := true
		f.Featured = &t
	}
	if *top {
		f.Sort = catalog.SortRating
	}

	prompts := cat.FilterPrompts(f)

	if *htmlOut != "" {
		writePage(lib, prompts, *htmlOut)
		return
	}

	if len(prompts) == 0 {
		fmt.Println("No prompts found")
		return
	}

	for _, p := range prompts {
		marker := " "
		if lib.IsFavorited(p.ID) {
			marker = "*"
		}
		fmt.Printf("%s %-24s %-30s %-12s %-12s %s\n",
			marker, p.ID, truncate(p.Title, 30), p.Category, p.Difficulty, render.GenerateStars(p.Rating))
	}
	fmt.Printf("\n%d prompts, %d favorited\n", len(prompts), lib.FavoritesCount())
}

// writePage renders the listing as the HTML the web front end serves and
// writes it to path.
func writePage(lib *library.Library, prompts []*domain.Prompt, path string) {
	page := render.NewPage()
	binder := render.NewBinder(page, lib, nil)
	binder.RenderPrompts(prompts)
	binder.UpdateFavoritesCount()

	markup, err := page.HTML()
	if err != nil {
		log.Fatalf("Failed to render page: %v", err)
	}

	if path == "-" {
		fmt.Print(markup)
		return
	}
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	fmt.Printf("Wrote %s (%d prompts)\n", path, len(prompts))
}

func runFav(args []string) {
	if len(args) == 0 {
		log.Fatal("Usage: deck fav add|rm|ls|clear [prompt-id]")
	}

	lib, closeLib := openLibrary()
	defer closeLib()

	switch args[0] {
	case "add":
		promptID := requireArg(args, 1, "prompt id")
		lib.AddToFavorites(promptID)
		fmt.Printf("Favorited %s (%d total)\n", promptID, lib.FavoritesCount())
	case "rm":
		promptID := requireArg(args, 1, "prompt id")
		lib.RemoveFromFavorites(promptID)
		fmt.Printf("Removed %s (%d total)\n", promptID, lib.FavoritesCount())
	case "ls":
		favorites := lib.Favorites()
		if len(favorites) == 0 {
			fmt.Println("No favorites yet")
			return
		}
		for _, promptID := range favorites {
			fmt.Println(promptID)
		}
	case "clear":
		lib.ClearFavorites()
		fmt.Println("Favorites cleared")
	default:
		log.Fatalf("Unknown fav command: %s", args[0])
	}
}

func runCol(args []string) {
	if len(args) == 0 {
		log.Fatal("Usage: deck col create|ls|show|rm|add|drop ...")
	}

	lib, closeLib := openLibrary()
	defer closeLib()

	switch args[0] {
	case "create":
		name := requireArg(args, 1, "collection name")
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		collection, err := lib.CreateCollection(name, description)
		if err != nil {
			log.Fatalf("Failed to create collection: %v", err)
		}
		fmt.Printf("Created %q (%s)\n", collection.Name, collection.ID)
	case "ls":
		collections := lib.Collections()
		if len(collections) == 0 {
			fmt.Println("No collections yet")
			return
		}
		for _, c := range collections {
			fmt.Printf("%-24s %-28s %d prompts\n", c.ID, truncate(c.Name, 28), len(c.PromptIDs))
		}
	case "show":
		collectionID := requireArg(args, 1, "collection id")
		collection, ok := lib.GetCollection(collectionID)
		if !ok {
			log.Fatalf("No collection %s", collectionID)
		}
		fmt.Printf("%s (%s)\n", collection.Name, collection.ID)
		if collection.Description != "" {
			fmt.Println(collection.Description)
		}
		for _, promptID := range collection.PromptIDs {
			fmt.Printf("  %s\n", promptID)
		}
	case "rm":
		collectionID := requireArg(args, 1, "collection id")
		lib.DeleteCollection(collectionID)
		fmt.Printf("Deleted %s\n", collectionID)
	case "add":
		collectionID := requireArg(args, 1, "collection id")
		promptID := requireArg(args, 2, "prompt id")
		if err := lib.AddToCollection(collectionID, promptID); err != nil {
			log.Fatalf("Failed to add prompt: %v", err)
		}
		fmt.Printf("Added %s to %s\n", promptID, collectionID)
	case "drop":
		collectionID := requireArg(args, 1, "collection id")
		promptID := requireArg(args, 2, "prompt id")
		if err := lib.RemoveFromCollection(collectionID, promptID); err != nil {
			log.Fatalf("Failed to remove prompt: %v", err)
		}
		fmt.Printf("Removed %s from %s\n", promptID, collectionID)
	default:
		log.Fatalf("Unknown col command: %s", args[0])
	}
}

func runDiscover(args []string) {
	fs := flag.NewFlagSet("discover", flag.ExitOnError)
	timeout := fs.Duration("timeout", 2*time.Second, "How long to wait for responses")
	fs.Parse(args)

	fmt.Println("Looking for PromptDeck servers...")

	servers, err := mdns.Discover(*timeout)
	if err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}

	if len(servers) == 0 {
		fmt.Println("No servers found")
		return
	}

	for _, s := range servers {
		fmt.Printf("%-24s %-30s api %s\n", truncate(s.Name, 24), s.URL(), s.Fields["api"])
	}
	fmt.Printf("\n%d server(s) found\n", len(servers))
}
