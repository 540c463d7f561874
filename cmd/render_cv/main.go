// Command render_cv writes the CV from the configured store to disk, as
// print HTML or as a PDF.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"portfolio-site/internal/bootstrap"
	"portfolio-site/internal/usecase"
	infra "portfolio-site/pkg/infrastructure"
)

func main() {
	outDir := flag.String("out", ".", "output directory")
	htmlOnly := flag.Bool("html", false, "write the print HTML instead of a PDF")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	cfg, log, err := bootstrap.Setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("document store unavailable", "error", err)
	}
	defer closeStore()

	svc := usecase.NewService(store, infra.NewChromedpRenderer(cfg.ChromePath), nil, log)

	var (
		name string
		data []byte
	)
	if *htmlOnly {
		var buf bytes.Buffer
		if err := svc.RenderCVPrint(ctx, &buf); err != nil {
			log.Fatal("render html", "error", err)
		}
		name, data = "cv_print.html", buf.Bytes()
	} else {
		data, name, err = svc.RenderCVPDF(ctx)
		if err != nil {
			log.Fatal("render pdf", "error", err)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal("create output dir", "error", err)
	}
	out := filepath.Join(*outDir, name)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Fatal("write output", "error", err)
	}
	fmt.Printf("wrote %s\n", out)
}
