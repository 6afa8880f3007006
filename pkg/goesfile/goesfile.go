package goesfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ContainerPrefix is the namespace shared by the per-satellite archive
// containers. Satellite "16" lives in "noaa-goes16".
const ContainerPrefix = "noaa-goes"

// timeLayout parses the 13-digit YYYYDDDHHMMSS timestamp field.
const timeLayout = "2006002150405"

// keyLayout is the hour portion of an archive key: year/day-of-year/hour.
const keyLayout = "2006/002/15"

// ErrBadName is returned when a filename does not follow the GOES-R naming
// convention. Errors from this package wrap it; test with errors.Is.
var ErrBadName = errors.New("goesfile: filename does not match GOES-R convention")

// Info holds the fields recoverable from a GOES-R filename alone.
type Info struct {
	// Satellite is the satellite number as a string, e.g. "16".
	Satellite string
	// Product is the product identifier with the mode/channel suffix
	// removed, e.g. "ABI-L1b-RadF".
	Product string
	// Time is the observation start timestamp, in UTC.
	Time time.Time
}

// Timestamp extracts the observation start time from a GOES-R filename.
// The timestamp sits in underscore field 3, between a leading marker
// character and a trailing sub-second digit.
func Timestamp(name string) (time.Time, error) {
	parts := strings.Split(name, "_")
	if len(parts) < 4 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	field := parts[3]
	if len(field) < 3 {
		return time.Time{}, fmt.Errorf("%w: timestamp field %q too short", ErrBadName, name)
	}
	t, err := time.Parse(timeLayout, field[1:len(field)-1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp field %q: %v", ErrBadName, name, err)
	}
	return t, nil
}

// Parse extracts satellite, product and timestamp from a GOES-R filename.
// The satellite number is field 2 without its leading "G"; the product is
// field 1 minus its last hyphen-separated segment.
func Parse(name string) (Info, error) {
	t, err := Timestamp(name)
	if err != nil {
		return Info{}, err
	}

	parts := strings.Split(name, "_")
	if len(parts[2]) < 2 {
		return Info{}, fmt.Errorf("%w: satellite field %q", ErrBadName, name)
	}
	sat := parts[2][1:]

	idx := strings.LastIndex(parts[1], "-")
	if idx <= 0 {
		return Info{}, fmt.Errorf("%w: product field %q", ErrBadName, name)
	}
	product := parts[1][:idx]

	return Info{Satellite: sat, Product: product, Time: t}, nil
}

// Container returns the archive container name for a satellite number.
func Container(satellite string) string {
	return ContainerPrefix + satellite
}

// KeyPrefix returns the archive key prefix for one hour of a product,
// with a trailing slash, e.g. "ABI-L1b-RadF/2020/001/05/".
func KeyPrefix(product string, hour time.Time) string {
	return product + "/" + hour.UTC().Format(keyLayout) + "/"
}

// Key returns the full archive key for a file within an hour partition.
func Key(product string, hour time.Time, name string) string {
	return KeyPrefix(product, hour) + name
}

// SplitKey is the inverse of Key: it decomposes an archive key into
// product, hour and filename.
func SplitKey(key string) (product string, hour time.Time, name string, err error) {
	parts := strings.Split(key, "/")
	if len(parts) != 5 {
		return "", time.Time{}, "", fmt.Errorf("goesfile: key %q does not match <product>/<year>/<doy>/<hour>/<file>", key)
	}
	hour, err = time.Parse(keyLayout, strings.Join(parts[1:4], "/"))
	if err != nil {
		return "", time.Time{}, "", fmt.Errorf("goesfile: key %q: %w", key, err)
	}
	return parts[0], hour, parts[4], nil
}

// LocalDir returns the mirror directory for one hour partition, rooted at
// root and including the container name segment.
func LocalDir(root, satellite, product string, hour time.Time) string {
	h := hour.UTC()
	return filepath.Join(root, Container(satellite), product,
		h.Format("2006"), h.Format("002"), h.Format("15"))
}

// LocalPath returns the mirror path for a file within an hour partition.
func LocalPath(root, satellite, product string, hour time.Time, name string) string {
	return filepath.Join(LocalDir(root, satellite, product, hour), name)
}
