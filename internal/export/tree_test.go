package export

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rustavail/rustavail/internal/availability"
)

// fakeDataset is an in-memory Dataset for exporter tests.
type fakeDataset struct {
	targets  []string
	packages []string
	rows     map[string]availability.Row // keyed by target + "/" + pkg
}

func (f *fakeDataset) Targets() []string  { return f.targets }
func (f *fakeDataset) Packages() []string { return f.packages }

func (f *fakeDataset) Row(target, pkg string, _ []time.Time) availability.Row {
	return f.rows[target+"/"+pkg]
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestTreeEndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dates := []time.Time{date(2024, 1, 1), date(2024, 1, 2)}
	last := date(2024, 1, 2)

	ds := &fakeDataset{
		targets:  []string{"x86_64-linux", "aarch64-darwin"},
		packages: []string{"rustc", "cargo"},
		rows: map[string]availability.Row{
			"x86_64-linux/rustc":   {PerDate: []bool{true, true}, LastAvailable: &last},
			"x86_64-linux/cargo":   {PerDate: []bool{true, true}, LastAvailable: &last},
			"aarch64-darwin/rustc": {PerDate: []bool{false, false}},
			"aarch64-darwin/cargo": {PerDate: []bool{true, true}, LastAvailable: &last},
		},
	}

	if err := Tree(ds, dates, root, discardLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("marker contains the last available date", func(t *testing.T) {
		t.Parallel()
		got := readFile(t, filepath.Join(root, "x86_64-linux", "rustc"))
		if got != "2024-01-02\n" {
			t.Errorf("expected %q, got %q", "2024-01-02\n", got)
		}
	})

	t.Run("never-available package has no marker file", func(t *testing.T) {
		t.Parallel()
		if _, err := os.Stat(filepath.Join(root, "aarch64-darwin", "rustc")); !os.IsNotExist(err) {
			t.Errorf("expected marker file to be absent, stat err = %v", err)
		}
	})

	t.Run("JSON map matches availability", func(t *testing.T) {
		t.Parallel()
		got := readFile(t, filepath.Join(root, "x86_64-linux", "rustc.json"))
		want := `{"2024-01-01":true,"2024-01-02":true,"last_available":"2024-01-02"}`
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("JSON map for never-available package has null last_available", func(t *testing.T) {
		t.Parallel()
		got := readFile(t, filepath.Join(root, "aarch64-darwin", "rustc.json"))
		want := `{"2024-01-01":false,"2024-01-02":false,"last_available":null}`
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("JSON artifact is valid JSON", func(t *testing.T) {
		t.Parallel()
		var m map[string]any
		raw := readFile(t, filepath.Join(root, "x86_64-linux", "cargo.json"))
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			t.Fatalf("artifact is not valid JSON: %v", err)
		}
		if len(m) != 3 {
			t.Errorf("expected 3 keys (2 dates + last_available), got %d", len(m))
		}
	})
}

func TestTreeRowMismatchSkipsJSONOnly(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dates := []time.Time{date(2024, 1, 1), date(2024, 1, 2)}
	last := date(2024, 1, 1)

	ds := &fakeDataset{
		targets:  []string{"x86_64-linux"},
		packages: []string{"rustc"},
		rows: map[string]availability.Row{
			// One entry short of the date list.
			"x86_64-linux/rustc": {PerDate: []bool{true}, LastAvailable: &last},
		},
	}

	if err := Tree(ds, dates, root, discardLogger()); err != nil {
		t.Fatalf("mismatch must not fail the export: %v", err)
	}

	t.Run("JSON artifact is skipped", func(t *testing.T) {
		t.Parallel()
		if _, err := os.Stat(filepath.Join(root, "x86_64-linux", "rustc.json")); !os.IsNotExist(err) {
			t.Errorf("expected JSON artifact to be absent, stat err = %v", err)
		}
	})

	t.Run("marker file is still written", func(t *testing.T) {
		t.Parallel()
		got := readFile(t, filepath.Join(root, "x86_64-linux", "rustc"))
		if got != "2024-01-01\n" {
			t.Errorf("expected %q, got %q", "2024-01-01\n", got)
		}
	})
}

func TestWritePackagesJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		pkgs []string
		want string
	}{
		{name: "zero packages", pkgs: nil, want: "[\n]\n"},
		{name: "one package", pkgs: []string{"rustc"}, want: "[\n\"rustc\"\n]\n"},
		{
			name: "many packages",
			pkgs: []string{"rustc", "cargo", "clippy"},
			want: "[\n\"rustc\",\n\"cargo\",\n\"clippy\"\n]\n",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "packages.json")
			if err := writePackagesJSON(tc.pkgs, path); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := readFile(t, path)
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}

			var names []string
			if err := json.Unmarshal([]byte(got), &names); err != nil {
				t.Fatalf("output is not a valid JSON array: %v", err)
			}
			if len(names) != len(tc.pkgs) {
				t.Errorf("expected %d elements, got %d", len(tc.pkgs), len(names))
			}
			for i := range names {
				if names[i] != tc.pkgs[i] {
					t.Errorf("element %d: expected %q, got %q", i, tc.pkgs[i], names[i])
				}
			}
		})
	}
}

func TestTreeZeroPackages(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ds := &fakeDataset{targets: []string{"x86_64-linux"}}

	if err := Tree(ds, nil, root, discardLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("packages.json is still written", func(t *testing.T) {
		t.Parallel()
		if got := readFile(t, filepath.Join(root, "packages.json")); got != "[\n]\n" {
			t.Errorf("expected empty array, got %q", got)
		}
	})

	t.Run("target directory exists but is empty", func(t *testing.T) {
		t.Parallel()
		entries, err := os.ReadDir(filepath.Join(root, "x86_64-linux"))
		if err != nil {
			t.Fatalf("expected target directory: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no per-package files, got %d entries", len(entries))
		}
	})
}

func TestTreeFailsOnUnwritableRoot(t *testing.T) {
	t.Parallel()

	ds := &fakeDataset{packages: []string{"rustc"}}

	// packages.json creation under a non-existent root must fail loudly.
	err := Tree(ds, nil, filepath.Join(t.TempDir(), "missing", "root"), discardLogger())
	if err == nil {
		t.Fatal("expected error for unwritable root, got nil")
	}
}
