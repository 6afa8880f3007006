package mirror

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestVerifyCleanMirror(t *testing.T) {
	ctx := context.Background()
	opener := dirOpener{root: t.TempDir()}
	inWindow, _ := seedWindow(t, opener)
	fsys := afero.NewMemMapFs()

	if _, err := Mirror(ctx, opener, "/data", []string{"ABI-L1b-RadF"}, testStart, testEnd, Options{Fs: fsys}); err != nil {
		t.Fatalf("Mirror: %v", err)
	}

	result, err := Verify(ctx, opener, "/data", []string{"ABI-L1b-RadF"}, testStart, testEnd, Options{Fs: fsys})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if !result.Valid {
		t.Errorf("expected valid mirror, got %+v", result)
	}
	if result.Checked != len(inWindow) {
		t.Errorf("Checked = %d, want %d", result.Checked, len(inWindow))
	}
}

func TestVerifyDetectsProblems(t *testing.T) {
	ctx := context.Background()
	opener := dirOpener{root: t.TempDir()}
	inWindow, _ := seedWindow(t, opener)
	fsys := afero.NewMemMapFs()

	if _, err := Mirror(ctx, opener, "/data", []string{"ABI-L1b-RadF"}, testStart, testEnd, Options{Fs: fsys}); err != nil {
		t.Fatalf("Mirror: %v", err)
	}

	// Delete one file and truncate the other.
	gone := filepath.Join(localHourDir("/data", "16", "001/05"), inWindow[0])
	if err := fsys.Remove(gone); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	stale := filepath.Join(localHourDir("/data", "16", "001/06"), inWindow[1])
	if err := afero.WriteFile(fsys, stale, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	result, err := Verify(ctx, opener, "/data", []string{"ABI-L1b-RadF"}, testStart, testEnd, Options{Fs: fsys})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if result.Valid {
		t.Error("expected invalid mirror")
	}
	if result.Missing != 1 {
		t.Errorf("Missing = %d, want 1", result.Missing)
	}
	if result.SizeMismatches != 1 {
		t.Errorf("SizeMismatches = %d, want 1", result.SizeMismatches)
	}
	if len(result.Errors) != 2 {
		t.Errorf("Errors = %v, want 2 entries", result.Errors)
	}
}

func TestVerifyCountsMissingHours(t *testing.T) {
	ctx := context.Background()
	opener := dirOpener{root: t.TempDir()}
	fsys := afero.NewMemMapFs()

	name := goesName("C01", "16", "2020001053000")
	seed(t, opener, "16", "ABI-L1b-RadF/2020/001/05/"+name, []byte("data"))

	if _, err := Mirror(ctx, opener, "/data", []string{"ABI-L1b-RadF"}, testStart, testEnd, Options{Fs: fsys}); err != nil {
		t.Fatalf("Mirror: %v", err)
	}

	end := time.Date(2020, 1, 1, 7, 15, 0, 0, time.UTC)
	result, err := Verify(ctx, opener, "/data", []string{"ABI-L1b-RadF"}, testStart, end, Options{Fs: fsys})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if !result.Valid {
		t.Errorf("expected valid mirror, got %+v", result)
	}
	if result.MissingHours != 2 {
		t.Errorf("MissingHours = %d, want 2", result.MissingHours)
	}
}
