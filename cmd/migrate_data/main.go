// Command migrate_data upgrades a stored document to the current schema
// version and writes it back.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"portfolio-site/internal/bootstrap"
	"portfolio-site/internal/domain"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "load and validate without saving")
	flag.Parse()

	cfg, log, err := bootstrap.Setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("document store unavailable", "error", err)
	}
	defer closeStore()

	// Load runs the document migrations; saving persists the upgraded shape.
	doc, err := store.Load(ctx)
	if err != nil {
		log.Fatal("load document", "error", err)
	}
	if *dryRun {
		fmt.Printf("document is valid: %d sections, %d projects\n", len(doc.CV.Sections), len(doc.Portfolio.Projects))
		return
	}
	if err := store.Save(ctx, doc); err != nil {
		log.Fatal("save document", "error", err)
	}
	fmt.Printf("document saved at schema version %d\n", domain.CurrentSchemaVersion)
}
