// Package organize moves an existing directory of GOES-R files into the
// archive's hour-partitioned layout.
//
// This is useful for migrating an old dataset into the structure a
// mirror run expects, so subsequent runs recognize the files as already
// present. Target paths are computed from the filenames alone; no remote
// access or size comparison is involved.
//
// In dry-run mode only the first candidate move is reported, giving a
// cheap preview of the target layout.
package organize
