package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gocloud.dev/blob"

	"github.com/meteoswiss-mdr/goesmirror/pkg/goesfile"
)

// VerifyResult reports how a local mirror compares to the archive over a
// window. Missing or mismatched files are not errors; they are counted
// and detailed here with Valid=false.
type VerifyResult struct {
	Valid          bool
	Checked        int      // in-window remote files examined
	Missing        int      // files absent from the mirror
	SizeMismatches int      // files present with a different size
	MissingHours   int      // hour partitions with no remote data
	Errors         []string // one line per missing or mismatched file
}

// Verify audits the mirror at root against the archive for the window
// [start, end) without transferring anything. Only the Satellites, Filter
// and Fs fields of opts are consulted; the defaults match Mirror's.
//
// Remote metadata comes from the hour listings alone, so a verify run is
// cheap even over large windows.
func Verify(ctx context.Context, opener BucketOpener, root string, products []string, start, end time.Time, opts Options) (*VerifyResult, error) {
	if len(opts.Satellites) == 0 {
		opts.Satellites = []string{"16"}
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	result := &VerifyResult{Valid: true, Errors: make([]string, 0)}

	for _, product := range products {
		for _, sat := range opts.Satellites {
			bkt, err := opener.OpenBucket(ctx, sat)
			if err != nil {
				return nil, fmt.Errorf("mirror: open %s: %w", goesfile.Container(sat), err)
			}
			err = verifyPair(ctx, bkt, root, product, sat, start, end, opts, result)
			if cerr := bkt.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("mirror: close %s: %w", goesfile.Container(sat), cerr)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func verifyPair(ctx context.Context, bkt *blob.Bucket, root, product, sat string, start, end time.Time, opts Options, result *VerifyResult) error {
	for _, hb := range Buckets(product, sat, start, end) {
		objs, err := ListHour(ctx, bkt, hb)
		if errors.Is(err, ErrHourNotFound) {
			result.MissingHours++
			continue
		}
		if err != nil {
			return err
		}

		dir := hb.LocalDir(root)
		for _, obj := range objs {
			name := path.Base(obj.Key)
			if opts.Filter != nil && !opts.Filter.Match(name) {
				continue
			}
			ts, err := goesfile.Timestamp(name)
			if err != nil {
				return err
			}
			if ts.Before(start) || !ts.Before(end) {
				continue
			}

			result.Checked++
			local := filepath.Join(dir, name)
			info, err := opts.Fs.Stat(local)
			if err != nil {
				if os.IsNotExist(err) {
					result.Valid = false
					result.Missing++
					result.Errors = append(result.Errors,
						fmt.Sprintf("missing: %s", local))
					continue
				}
				return fmt.Errorf("mirror: stat %s: %w", local, err)
			}
			if info.Size() != obj.Size {
				result.Valid = false
				result.SizeMismatches++
				result.Errors = append(result.Errors,
					fmt.Sprintf("size mismatch: %s: local %d, remote %d",
						local, info.Size(), obj.Size))
			}
		}
	}
	return nil
}
