package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/meteoswiss-mdr/goesmirror/internal/organize"
)

// runOrganize moves an existing directory of GOES-R files into the
// hour-partitioned mirror layout, so a subsequent mirror run recognizes
// them as already present.
func runOrganize(args []string) int {
	fs := flag.NewFlagSet("organize", flag.ExitOnError)

	from := fs.String("from", "", "Directory holding the existing files (required)")
	to := fs.String("to", "", "Mirror root to move them into (required)")
	dryRun := fs.Bool("dry-run", false, "Show the first candidate move and exit")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: goesmirror organize [options]

Walk a directory of GOES-R ".nc" files and move each into the archive's
satellite/product/year/day/hour layout below the target directory. Target
paths are computed from the filenames alone.

With -dry-run, only the first candidate move is shown as a preview.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if *from == "" || *to == "" {
		fmt.Fprintln(os.Stderr, "Error: -from and -to are required")
		fs.Usage()
		return ExitInvalidArgs
	}

	result, err := organize.Reorganize(afero.NewOsFs(), *from, *to, *dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}

	if *dryRun {
		if len(result.Moves) == 0 {
			fmt.Println("No GOES-R files found")
			return ExitSuccess
		}
		fmt.Printf("From: %s\n", result.Moves[0].From)
		fmt.Printf("To: %s\n", result.Moves[0].To)
		return ExitSuccess
	}

	fmt.Fprintf(os.Stderr, "[goesmirror] Moved %d files into %s\n", result.Moved, *to)
	return ExitSuccess
}
