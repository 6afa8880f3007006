package goesfile

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

const sampleName = "OR_ABI-L1b-RadF-M6C01_G16_s20200010530000_e20200010539308_c20200010539354.nc"

func TestTimestamp(t *testing.T) {
	got, err := Timestamp(sampleName)
	if err != nil {
		t.Fatalf("Timestamp: %v", err)
	}
	want := time.Date(2020, 1, 1, 5, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", got, want)
	}
}

func TestTimestampDayOfYear(t *testing.T) {
	// Day 300 of 2021 is October 27.
	got, err := Timestamp("OR_ABI-L2-CMIPF-M6C13_G17_s20213001700204_e20213001709512_c20213001709599.nc")
	if err != nil {
		t.Fatalf("Timestamp: %v", err)
	}
	want := time.Date(2021, 10, 27, 17, 0, 20, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", got, want)
	}
}

func TestTimestampBadNames(t *testing.T) {
	cases := []struct {
		desc string
		name string
	}{
		{"too few fields", "not-a-goes-file.nc"},
		{"short timestamp field", "OR_ABI-L1b-RadF-M6C01_G16_s0"},
		{"non-digit timestamp", "OR_ABI-L1b-RadF-M6C01_G16_sabcdefghijklmn0_e.nc"},
		{"truncated timestamp", "OR_ABI-L1b-RadF-M6C01_G16_s202000105300_e.nc"},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			if _, err := Timestamp(tc.name); !errors.Is(err, ErrBadName) {
				t.Errorf("Timestamp(%q) err = %v, want ErrBadName", tc.name, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	info, err := Parse(sampleName)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.Satellite != "16" {
		t.Errorf("Satellite = %q, want %q", info.Satellite, "16")
	}
	if info.Product != "ABI-L1b-RadF" {
		t.Errorf("Product = %q, want %q", info.Product, "ABI-L1b-RadF")
	}
	want := time.Date(2020, 1, 1, 5, 30, 0, 0, time.UTC)
	if !info.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", info.Time, want)
	}
}

func TestKeyPrefix(t *testing.T) {
	hour := time.Date(2020, 1, 1, 5, 0, 0, 0, time.UTC)
	got := KeyPrefix("ABI-L1b-RadF", hour)
	want := "ABI-L1b-RadF/2020/001/05/"
	if got != want {
		t.Errorf("KeyPrefix = %q, want %q", got, want)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	hour := time.Date(2020, 1, 1, 6, 0, 0, 0, time.UTC)
	key := Key("ABI-L1b-RadF", hour, sampleName)

	product, gotHour, name, err := SplitKey(key)
	if err != nil {
		t.Fatalf("SplitKey(%q): %v", key, err)
	}
	if product != "ABI-L1b-RadF" {
		t.Errorf("product = %q, want %q", product, "ABI-L1b-RadF")
	}
	if !gotHour.Equal(hour) {
		t.Errorf("hour = %v, want %v", gotHour, hour)
	}
	if name != sampleName {
		t.Errorf("name = %q, want %q", name, sampleName)
	}
}

func TestLocalPathMatchesKeyLayout(t *testing.T) {
	hour := time.Date(2020, 1, 1, 5, 0, 0, 0, time.UTC)
	got := LocalPath("/data", "16", "ABI-L1b-RadF", hour, sampleName)
	want := filepath.Join("/data", "noaa-goes16", "ABI-L1b-RadF", "2020", "001", "05", sampleName)
	if got != want {
		t.Errorf("LocalPath = %q, want %q", got, want)
	}
}

func TestContainer(t *testing.T) {
	if got := Container("17"); got != "noaa-goes17" {
		t.Errorf("Container = %q, want %q", got, "noaa-goes17")
	}
}
