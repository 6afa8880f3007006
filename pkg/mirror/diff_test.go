package mirror

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/meteoswiss-mdr/goesmirror/pkg/goesfile"
)

const diffName = "OR_ABI-L1b-RadF-M6C01_G16_s20200010530000_e20200010539308_c20200010539354.nc"

func newDiffer(fsys afero.Fs) *Differ {
	return &Differ{
		Start: time.Date(2020, 1, 1, 5, 30, 0, 0, time.UTC),
		End:   time.Date(2020, 1, 1, 6, 15, 0, 0, time.UTC),
		Fs:    fsys,
	}
}

func TestDifferNoLocalFile(t *testing.T) {
	d := newDiffer(afero.NewMemMapFs())

	need, err := d.NeedsDownload(Object{Key: "p/2020/001/05/" + diffName, Size: 10}, "/data/"+diffName)
	if err != nil {
		t.Fatalf("NeedsDownload: %v", err)
	}
	if !need {
		t.Error("expected download for missing local file")
	}
}

func TestDifferWindow(t *testing.T) {
	tests := []struct {
		desc string
		// stamp is the 13-digit YYYYDDDHHMMSS filename timestamp
		stamp string
		want  bool
	}{
		{"before start", "2020001052959", false},
		{"at start", "2020001053000", true},
		{"just before end", "2020001061459", true},
		{"at end", "2020001061500", false},
		{"after end in boundary hour", "2020001070000", false},
	}

	d := newDiffer(afero.NewMemMapFs())
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			name := "OR_ABI-L1b-RadF-M6C01_G16_s" + tt.stamp + "0_e0_c0.nc"
			need, err := d.NeedsDownload(Object{Key: name, Size: 1}, "/data/"+name)
			if err != nil {
				t.Fatalf("NeedsDownload: %v", err)
			}
			if need != tt.want {
				t.Errorf("NeedsDownload = %v, want %v", need, tt.want)
			}
		})
	}
}

func TestDifferSizeComparison(t *testing.T) {
	fsys := afero.NewMemMapFs()
	local := "/data/" + diffName
	if err := afero.WriteFile(fsys, local, []byte("12345"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := newDiffer(fsys)

	// Same size: already synchronized.
	need, err := d.NeedsDownload(Object{Key: diffName, Size: 5}, local)
	if err != nil {
		t.Fatalf("NeedsDownload: %v", err)
	}
	if need {
		t.Error("expected no download for matching size")
	}

	// Different size: stale.
	need, err = d.NeedsDownload(Object{Key: diffName, Size: 9}, local)
	if err != nil {
		t.Fatalf("NeedsDownload: %v", err)
	}
	if !need {
		t.Error("expected download for size mismatch")
	}
}

func TestDifferOverwrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	local := "/data/" + diffName
	if err := afero.WriteFile(fsys, local, []byte("12345"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := newDiffer(fsys)
	d.Overwrite = true

	// Overwrite wins even when sizes match.
	need, err := d.NeedsDownload(Object{Key: diffName, Size: 5}, local)
	if err != nil {
		t.Fatalf("NeedsDownload: %v", err)
	}
	if !need {
		t.Error("expected download with overwrite enabled")
	}

	// But the window still applies.
	late := "OR_ABI-L1b-RadF-M6C01_G16_s20200010700000_e0_c0.nc"
	need, err = d.NeedsDownload(Object{Key: late, Size: 5}, "/data/"+late)
	if err != nil {
		t.Fatalf("NeedsDownload: %v", err)
	}
	if need {
		t.Error("overwrite must not bypass the window check")
	}
}

func TestDifferBadName(t *testing.T) {
	d := newDiffer(afero.NewMemMapFs())

	_, err := d.NeedsDownload(Object{Key: "p/2020/001/05/garbage.nc", Size: 1}, "/data/garbage.nc")
	if !errors.Is(err, goesfile.ErrBadName) {
		t.Errorf("err = %v, want ErrBadName", err)
	}
}

func TestDifferFilterShortCircuits(t *testing.T) {
	d := newDiffer(afero.NewMemMapFs())
	d.Filter = FilterFunc(func(name string) bool { return false })

	// The filter rejects before the malformed name is ever parsed.
	need, err := d.NeedsDownload(Object{Key: "p/2020/001/05/garbage.nc", Size: 1}, "/data/garbage.nc")
	if err != nil {
		t.Fatalf("NeedsDownload: %v", err)
	}
	if need {
		t.Error("expected rejection by filter")
	}
}

func TestDifferFilterAccepts(t *testing.T) {
	d := newDiffer(afero.NewMemMapFs())
	d.Filter = FilterFunc(func(name string) bool { return true })

	need, err := d.NeedsDownload(Object{Key: "p/2020/001/05/" + diffName, Size: 1}, "/data/"+diffName)
	if err != nil {
		t.Fatalf("NeedsDownload: %v", err)
	}
	if !need {
		t.Error("expected download for accepted filename")
	}
}
