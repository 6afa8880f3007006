// Package progress provides progress reporting for mirror runs.
//
// This package outputs human-readable progress information, including
// completed file counts, transferred bytes and transfer speed. Totals are
// not known up front (each hour partition is listed only when the run
// reaches it), so there is no percentage or ETA.
//
// # Usage
//
//	reporter := progress.NewReporter(Options{
//	    Output:  os.Stderr,
//	    Workers: 8,
//	})
//
//	reporter.Start()
//	defer reporter.Stop()
//
//	// Update as files complete
//	reporter.FileCompleted(size)
//
// # Output Format
//
//	[goesmirror] Mirroring with 8 workers
//	[goesmirror] Files: 128 completed | 6 in-progress | 1.20 GB | Speed: 54.10 MB/s
package progress
