package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gocloud.dev/blob"

	"github.com/meteoswiss-mdr/goesmirror/internal/progress"
	"github.com/meteoswiss-mdr/goesmirror/pkg/goesfile"
)

const defaultWorkers = 8

// BucketOpener opens the archive container for a satellite. The
// production implementation is storage.S3Opener; tests substitute
// in-memory buckets.
type BucketOpener interface {
	OpenBucket(ctx context.Context, satellite string) (*blob.Bucket, error)
}

// Options configures a mirror run. The zero value is usable: satellite
// "16", the OS filesystem, default worker count, no filter, no output.
type Options struct {
	// Satellites are the satellite numbers to mirror. Default: ["16"].
	Satellites []string

	// Overwrite downloads every in-window file regardless of local state.
	Overwrite bool

	// DryRun announces intended downloads without transferring or
	// touching the local filesystem.
	DryRun bool

	// Filter, when non-nil, restricts downloads by filename.
	Filter FilenameFilter

	// Workers bounds the download pool of one hour partition.
	Workers int

	// Fs is the local filesystem to mirror into. Default: the OS.
	Fs afero.Fs

	// Progress, when non-nil, receives per-file transfer events.
	Progress *progress.Reporter

	// Log receives human-readable run output. Default: discard.
	Log io.Writer
}

// Summary reports what a mirror run did.
type Summary struct {
	// Downloaded counts files transferred (or announced in dry-run mode).
	Downloaded int
	// Skipped counts listed files that needed no transfer.
	Skipped int
	// Bytes is the total remote size of the downloaded files.
	Bytes int64
	// MissingHours lists hour partitions that had no remote data.
	MissingHours []string
}

// Mirror synchronizes root with the archive for every product and
// satellite over the half-open window [start, end). start < end is the
// caller's responsibility.
//
// Hour partitions are processed strictly in sequence; within a partition
// downloads run concurrently. An hour with no remote data is recorded in
// the summary and skipped. Any other failure ends the run with the
// partitions before it fully processed, so a re-run picks up where it
// left off by re-deriving the difference.
func Mirror(ctx context.Context, opener BucketOpener, root string, products []string, start, end time.Time, opts Options) (*Summary, error) {
	if len(opts.Satellites) == 0 {
		opts.Satellites = []string{"16"}
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Log == nil {
		opts.Log = io.Discard
	}

	sum := &Summary{}
	for _, product := range products {
		for _, sat := range opts.Satellites {
			bkt, err := opener.OpenBucket(ctx, sat)
			if err != nil {
				return sum, fmt.Errorf("mirror: open %s: %w", goesfile.Container(sat), err)
			}
			err = mirrorPair(ctx, bkt, root, product, sat, start, end, opts, sum)
			if cerr := bkt.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("mirror: close %s: %w", goesfile.Container(sat), cerr)
			}
			if err != nil {
				return sum, err
			}
		}
	}
	return sum, nil
}

// mirrorPair processes every hour partition of one (product, satellite)
// pair.
func mirrorPair(ctx context.Context, bkt *blob.Bucket, root, product, sat string, start, end time.Time, opts Options, sum *Summary) error {
	differ := &Differ{
		Start:     start,
		End:       end,
		Filter:    opts.Filter,
		Overwrite: opts.Overwrite,
		Fs:        opts.Fs,
	}

	for _, hb := range Buckets(product, sat, start, end) {
		objs, err := ListHour(ctx, bkt, hb)
		if errors.Is(err, ErrHourNotFound) {
			fmt.Fprintf(opts.Log, "[goesmirror] no data for %s\n", hb)
			sum.MissingHours = append(sum.MissingHours, hb.String())
			continue
		}
		if err != nil {
			return err
		}

		dir := hb.LocalDir(root)
		if !opts.DryRun {
			if err := opts.Fs.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("mirror: create %s: %w", dir, err)
			}
		}

		var tasks []Task
		for _, obj := range objs {
			local := filepath.Join(dir, path.Base(obj.Key))
			need, err := differ.NeedsDownload(obj, local)
			if err != nil {
				return err
			}
			if !need {
				sum.Skipped++
				continue
			}
			tasks = append(tasks, Task{Key: obj.Key, LocalPath: local, Size: obj.Size})
		}

		if err := downloadBatch(ctx, bkt, opts.Fs, tasks, opts.Workers, opts.Progress, opts.DryRun, opts.Log); err != nil {
			return err
		}

		sum.Downloaded += len(tasks)
		for _, t := range tasks {
			sum.Bytes += t.Size
		}
		fmt.Fprintf(opts.Log, "[goesmirror] %s: %d downloaded, %d up to date\n",
			hb, len(tasks), len(objs)-len(tasks))
	}
	return nil
}
