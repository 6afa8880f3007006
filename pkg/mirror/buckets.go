package mirror

import (
	"time"

	"github.com/meteoswiss-mdr/goesmirror/pkg/goesfile"
)

// HourBucket identifies one hour partition of one product on one satellite.
type HourBucket struct {
	Satellite string
	Product   string
	// Hour is the partition hour, aligned and in UTC.
	Hour time.Time
}

// Prefix returns the archive key prefix for this partition.
func (b HourBucket) Prefix() string {
	return goesfile.KeyPrefix(b.Product, b.Hour)
}

// LocalDir returns the mirror directory for this partition below root.
func (b HourBucket) LocalDir(root string) string {
	return goesfile.LocalDir(root, b.Satellite, b.Product, b.Hour)
}

func (b HourBucket) String() string {
	return goesfile.Container(b.Satellite) + "/" + b.Prefix()
}

// HourRange returns the hour-aligned times from the hour containing start
// through the hour containing end, inclusive. The window itself is
// half-open, but the hour containing end must still be visited: files
// timestamped just before end live in that partition.
func HourRange(start, end time.Time) []time.Time {
	first := start.UTC().Truncate(time.Hour)
	last := end.UTC().Truncate(time.Hour)

	var hours []time.Time
	for h := first; !h.After(last); h = h.Add(time.Hour) {
		hours = append(hours, h)
	}
	return hours
}

// Buckets returns the ordered hour partitions one (product, satellite)
// pair must visit for the window [start, end).
func Buckets(product, satellite string, start, end time.Time) []HourBucket {
	hours := HourRange(start, end)
	buckets := make([]HourBucket, 0, len(hours))
	for _, h := range hours {
		buckets = append(buckets, HourBucket{
			Satellite: satellite,
			Product:   product,
			Hour:      h,
		})
	}
	return buckets
}
