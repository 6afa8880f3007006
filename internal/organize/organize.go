package organize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/meteoswiss-mdr/goesmirror/pkg/goesfile"
)

// Move describes one file relocation.
type Move struct {
	From string
	To   string
}

// Result reports what a reorganization did, or in dry-run mode, the
// first move it would do.
type Result struct {
	DryRun bool
	Moved  int
	// Moves holds the performed moves, or in dry-run mode a single
	// candidate.
	Moves []Move
}

// errStopWalk ends the walk early once the dry-run candidate is found.
var errStopWalk = errors.New("organize: stop walk")

// Reorganize walks fromDir for GOES-R ".nc" files and moves each into
// the hour-partitioned mirror layout below toDir. A file whose name does
// not parse is a hard error, matching the mirror engine's strictness.
func Reorganize(fsys afero.Fs, fromDir, toDir string, dryRun bool) (*Result, error) {
	result := &Result{DryRun: dryRun}

	err := afero.Walk(fsys, fromDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".nc") {
			return nil
		}

		fi, err := goesfile.Parse(info.Name())
		if err != nil {
			return err
		}
		target := goesfile.LocalPath(toDir, fi.Satellite, fi.Product, fi.Time, info.Name())

		if dryRun {
			result.Moves = append(result.Moves, Move{From: path, To: target})
			return errStopWalk
		}

		if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("organize: create %s: %w", filepath.Dir(target), err)
		}
		if err := fsys.Rename(path, target); err != nil {
			return fmt.Errorf("organize: move %s: %w", path, err)
		}
		result.Moves = append(result.Moves, Move{From: path, To: target})
		result.Moved++
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return nil, err
	}
	return result, nil
}
