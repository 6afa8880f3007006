package organize

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/meteoswiss-mdr/goesmirror/pkg/goesfile"
)

const (
	fileA = "OR_ABI-L1b-RadF-M6C01_G16_s20200010530000_e20200010539308_c20200010539354.nc"
	fileB = "OR_ABI-L2-CMIPF-M6C13_G17_s20213001700204_e20213001709512_c20213001709599.nc"
)

func writeFile(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := afero.WriteFile(fsys, path, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestReorganize(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, filepath.Join("/old", fileA))
	writeFile(t, fsys, filepath.Join("/old", "nested", fileB))
	writeFile(t, fsys, "/old/README.txt") // ignored, not a .nc file

	result, err := Reorganize(fsys, "/old", "/data", false)
	if err != nil {
		t.Fatalf("Reorganize: %v", err)
	}
	if result.Moved != 2 {
		t.Fatalf("Moved = %d, want 2", result.Moved)
	}

	wantA := filepath.Join("/data", "noaa-goes16", "ABI-L1b-RadF", "2020", "001", "05", fileA)
	wantB := filepath.Join("/data", "noaa-goes17", "ABI-L2-CMIPF", "2021", "300", "17", fileB)
	for _, want := range []string{wantA, wantB} {
		if ok, _ := afero.Exists(fsys, want); !ok {
			t.Errorf("expected %s to exist", want)
		}
	}

	// Originals are gone, the ignored file stays put.
	if ok, _ := afero.Exists(fsys, filepath.Join("/old", fileA)); ok {
		t.Errorf("expected %s to have been moved", fileA)
	}
	if ok, _ := afero.Exists(fsys, "/old/README.txt"); !ok {
		t.Error("expected README.txt to stay")
	}
}

func TestReorganizeDryRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, filepath.Join("/old", fileA))
	writeFile(t, fsys, filepath.Join("/old", "nested", fileB))

	result, err := Reorganize(fsys, "/old", "/data", true)
	if err != nil {
		t.Fatalf("Reorganize: %v", err)
	}
	if result.Moved != 0 {
		t.Errorf("Moved = %d, want 0", result.Moved)
	}
	// Only the first candidate is reported.
	if len(result.Moves) != 1 {
		t.Fatalf("len(Moves) = %d, want 1", len(result.Moves))
	}

	// Nothing actually moved.
	if ok, _ := afero.Exists(fsys, filepath.Join("/old", fileA)); !ok {
		t.Error("expected dry run to leave files in place")
	}
}

func TestReorganizeBadName(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/old/strange_file.nc")

	_, err := Reorganize(fsys, "/old", "/data", false)
	if !errors.Is(err, goesfile.ErrBadName) {
		t.Errorf("err = %v, want ErrBadName", err)
	}
}
