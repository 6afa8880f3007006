package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	_ "gocloud.dev/blob/s3blob"

	"github.com/meteoswiss-mdr/goesmirror/internal/storage"
	"github.com/meteoswiss-mdr/goesmirror/pkg/mirror"
)

// runVerify checks that a local mirror matches the archive for a window.
// Only listing metadata is read; nothing is downloaded.
func runVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)

	dir := fs.String("dir", "", "Mirror root directory (required unless configured)")
	products := fs.String("products", "", "Comma-separated products (required unless configured)")
	start := fs.String("start", "", "Window start, inclusive (required)")
	end := fs.String("end", "", "Window end, exclusive (required)")
	sats := fs.String("sats", "", "Comma-separated satellite numbers (default \"16\")")
	match := fs.String("match", "", "Glob pattern filenames must match")
	configPath := fs.String("config", "", "Path to YAML config file")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: goesmirror verify [options]

Check that every in-window archive file exists locally with a matching
size. Reports missing and stale files without downloading anything.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}
	if *dir != "" {
		cfg.MirrorDir = *dir
	}
	if *products != "" {
		cfg.Products = splitList(*products)
	}
	if *sats != "" {
		cfg.Satellites = splitList(*sats)
	}

	if cfg.MirrorDir == "" || len(cfg.Products) == 0 || *start == "" || *end == "" {
		fmt.Fprintln(os.Stderr, "Error: -dir, -products, -start, and -end are required")
		fs.Usage()
		return ExitInvalidArgs
	}

	startTime, err := parseTime(*start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	endTime, err := parseTime(*end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	var filter mirror.FilenameFilter
	if *match != "" {
		pattern := *match
		filter = mirror.FilterFunc(func(name string) bool {
			ok, _ := path.Match(pattern, name)
			return ok
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	opener, err := storage.NewS3Opener(ctx, storage.S3Options{
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		Anonymous: cfg.S3.Anonymous,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}

	result, err := mirror.Verify(ctx, opener, cfg.MirrorDir, cfg.Products, startTime, endTime, mirror.Options{
		Satellites: cfg.Satellites,
		Filter:     filter,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}

	fmt.Printf("Mirror: %s\n", cfg.MirrorDir)
	fmt.Printf("Files checked: %d\n", result.Checked)
	if result.MissingHours > 0 {
		fmt.Printf("Hours without data: %d\n", result.MissingHours)
	}

	if result.Valid {
		fmt.Println("Status: VALID")
		return ExitSuccess
	}

	fmt.Println("Status: INVALID")
	fmt.Printf("Missing files: %d\n", result.Missing)
	fmt.Printf("Size mismatches: %d\n", result.SizeMismatches)

	if len(result.Errors) > 0 {
		fmt.Println("\nProblems:")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	return ExitVerifyFailed
}
