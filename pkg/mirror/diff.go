package mirror

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/spf13/afero"

	"github.com/meteoswiss-mdr/goesmirror/pkg/goesfile"
)

// FilenameFilter selects files by name. A nil filter accepts everything.
type FilenameFilter interface {
	Match(name string) bool
}

// FilterFunc adapts a plain function to a FilenameFilter.
type FilterFunc func(name string) bool

// Match calls f(name).
func (f FilterFunc) Match(name string) bool { return f(name) }

// Differ decides which remote objects must be fetched. All of its state
// is injected, so it can run against in-memory filesystems in tests.
type Differ struct {
	// Start and End bound the half-open eligibility window on the
	// timestamp derived from each filename.
	Start time.Time
	End   time.Time

	// Filter, when non-nil, is consulted before anything else. A
	// rejected filename is never timestamp-parsed or size-compared.
	Filter FilenameFilter

	// Overwrite accepts every in-window object regardless of local state.
	Overwrite bool

	// Fs is the local filesystem holding the mirror.
	Fs afero.Fs
}

// NeedsDownload reports whether obj must be fetched to localPath.
//
// Order of checks: filter, filename timestamp (a malformed name is a hard
// error), window, overwrite, then local existence and size. Equal sizes
// mean "already synchronized"; no byte-level comparison is done.
func (d *Differ) NeedsDownload(obj Object, localPath string) (bool, error) {
	name := path.Base(obj.Key)
	if d.Filter != nil && !d.Filter.Match(name) {
		return false, nil
	}

	ts, err := goesfile.Timestamp(name)
	if err != nil {
		return false, err
	}
	if ts.Before(d.Start) || !ts.Before(d.End) {
		return false, nil
	}

	if d.Overwrite {
		return true, nil
	}

	info, err := d.Fs.Stat(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("mirror: stat %s: %w", localPath, err)
	}
	return info.Size() != obj.Size, nil
}
