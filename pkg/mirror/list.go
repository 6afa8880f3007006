package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// ErrHourNotFound is returned by ListHour when an hour partition has no
// remote data. This is an expected condition for hours without
// observations; the driver reports it and moves on.
var ErrHourNotFound = errors.New("mirror: no data for hour")

// Object is one remote file in an hour partition.
type Object struct {
	// Key is the full archive key within the satellite container.
	Key string
	// Size is the object size reported by the store.
	Size int64
}

// ListHour lists the objects stored under an hour partition's key prefix.
// An empty or missing prefix yields an error wrapping ErrHourNotFound;
// any other listing failure propagates unchanged in kind.
func ListHour(ctx context.Context, bkt *blob.Bucket, hb HourBucket) ([]Object, error) {
	iter := bkt.List(&blob.ListOptions{Prefix: hb.Prefix()})

	var objs []Object
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			if gcerrors.Code(err) == gcerrors.NotFound {
				return nil, fmt.Errorf("%w: %s", ErrHourNotFound, hb)
			}
			return nil, fmt.Errorf("mirror: list %s: %w", hb, err)
		}
		if obj.IsDir {
			continue
		}
		objs = append(objs, Object{Key: obj.Key, Size: obj.Size})
	}

	if len(objs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrHourNotFound, hb)
	}
	return objs, nil
}
