package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"

	_ "gocloud.dev/blob/s3blob"

	"github.com/meteoswiss-mdr/goesmirror/internal/progress"
	"github.com/meteoswiss-mdr/goesmirror/internal/storage"
	"github.com/meteoswiss-mdr/goesmirror/pkg/mirror"
)

func runMirror(args []string) int {
	fs := flag.NewFlagSet("mirror", flag.ExitOnError)

	dir := fs.String("dir", "", "Mirror root directory (required unless configured)")
	products := fs.String("products", "", "Comma-separated products, e.g. ABI-L1b-RadF (required unless configured)")
	start := fs.String("start", "", "Window start, inclusive (required)")
	end := fs.String("end", "", "Window end, exclusive (required)")
	sats := fs.String("sats", "", "Comma-separated satellite numbers (default \"16\")")
	workers := fs.Int("workers", 0, "Parallel downloads within one hour partition")
	overwrite := fs.Bool("overwrite", false, "Download even when a matching local file exists")
	dryRun := fs.Bool("dry-run", false, "Report planned downloads without transferring")
	match := fs.String("match", "", "Glob pattern filenames must match, e.g. \"*C02*\"")
	configPath := fs.String("config", "", "Path to YAML config file")
	noProgress := fs.Bool("no-progress", false, "Disable the progress display")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: goesmirror mirror [options]

Synchronize a local directory with the GOES-R archive for a time window.
Files already present with matching sizes are skipped, so re-running after
an interruption resumes where it left off.

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
	if *workers > 0 {
		cfg.Workers = *workers
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
	if !startTime.Before(endTime) {
		fmt.Fprintln(os.Stderr, "Error: -start must be before -end")
		return ExitInvalidArgs
	}

	var filter mirror.FilenameFilter
	if *match != "" {
		if _, err := path.Match(*match, "probe"); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -match pattern: %v\n", err)
			return ExitInvalidArgs
		}
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
		fmt.Fprintln(os.Stderr, "\n[goesmirror] Received interrupt, shutting down...")
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

	opts := mirror.Options{
		Satellites: cfg.Satellites,
		Overwrite:  *overwrite,
		DryRun:     *dryRun,
		Filter:     filter,
		Workers:    cfg.Workers,
		Log:        os.Stderr,
	}

	if !*dryRun && !*noProgress {
		reporter := progress.NewReporter(progress.Options{
			Workers: cfg.Workers,
			Output:  os.Stderr,
		})
		reporter.Start()
		defer reporter.Stop()
		opts.Progress = reporter
	}

	sum, err := mirror.Mirror(ctx, opener, cfg.MirrorDir, cfg.Products, startTime, endTime, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "[goesmirror] Run again to resume")
		return ExitStorageError
	}

	verb := "Downloaded"
	if *dryRun {
		verb = "Would download"
	}
	fmt.Fprintf(os.Stderr, "[goesmirror] %s %d files (%s), %d up to date\n",
		verb, sum.Downloaded, progress.FormatBytes(sum.Bytes), sum.Skipped)
	if len(sum.MissingHours) > 0 {
		fmt.Fprintf(os.Stderr, "[goesmirror] %d hour partitions had no data\n", len(sum.MissingHours))
	}
	return ExitSuccess
}

// splitList splits a comma-separated flag value.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
