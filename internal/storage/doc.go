// Package storage opens the per-satellite archive containers as
// gocloud.dev blob buckets.
//
// The NOAA archive buckets are public, so the default S3 client uses
// anonymous credentials. A custom endpoint switches to path-style
// addressing and the standard credential chain, which covers
// MinIO-compatible stores.
//
// # Usage
//
//	opener, err := storage.NewS3Opener(ctx, storage.S3Options{Anonymous: true})
//	bkt, err := opener.OpenBucket(ctx, "16") // opens noaa-goes16
//
// URLOpener serves tests and non-AWS setups by building gocloud bucket
// URLs from a pattern.
package storage
