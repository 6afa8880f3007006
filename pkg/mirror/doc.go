// Package mirror synchronizes a local directory tree with the
// hour-partitioned GOES-R archive in cloud object storage.
//
// A mirror run walks products x satellites x hour partitions for a
// half-open time window, lists each partition, decides per file whether a
// download is needed (window check, optional filename filter, local
// size comparison), and transfers the needed files with a worker pool
// bounded to one partition at a time. Partitions with no remote data are
// reported and skipped; every other failure terminates the run.
//
// # Usage
//
//	opener, err := storage.NewS3Opener(ctx, storage.S3Options{})
//	summary, err := mirror.Mirror(ctx, opener, "/data",
//	    []string{"ABI-L1b-RadF"}, start, end, mirror.Options{
//	        Satellites: []string{"16"},
//	        Workers:    8,
//	    })
//
// Storage access goes through gocloud.dev/blob, so any blob driver works;
// tests use in-memory buckets. Local filesystem access goes through an
// injectable afero.Fs.
//
// Re-running with identical arguments is safe: files already present with
// matching sizes are skipped, so an interrupted run resumes by re-deriving
// the difference from scratch.
package mirror
