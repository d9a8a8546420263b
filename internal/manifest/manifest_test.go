package manifest

import (
	"testing"
	"time"
)

const sampleManifest = `manifest-version = "2"
date = "2024-01-02"

[pkg.rustc]
version = "1.77.0-nightly (abcdef 2024-01-01)"

[pkg.rustc.target.x86_64-unknown-linux-gnu]
available = true

[pkg.rustc.target.aarch64-apple-darwin]
available = false

[pkg.cargo]
version = "1.77.0-nightly (abcdef 2024-01-01)"

[pkg.cargo.target.x86_64-unknown-linux-gnu]
available = true

[pkg.rust-src]
version = "1.77.0-nightly (abcdef 2024-01-01)"

[pkg.rust-src.target."*"]
available = true
`

func TestParse(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("date is parsed as UTC midnight", func(t *testing.T) {
		t.Parallel()
		want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		if !m.Date.Equal(want) {
			t.Errorf("expected date %v, got %v", want, m.Date)
		}
	})

	t.Run("packages are sorted", func(t *testing.T) {
		t.Parallel()
		want := []string{"cargo", "rust-src", "rustc"}
		if len(m.Packages) != len(want) {
			t.Fatalf("expected %d packages, got %d", len(want), len(m.Packages))
		}
		for i, name := range want {
			if m.Packages[i] != name {
				t.Errorf("packages[%d]: expected %q, got %q", i, name, m.Packages[i])
			}
		}
	})

	t.Run("targets exclude the wildcard", func(t *testing.T) {
		t.Parallel()
		want := []string{"aarch64-apple-darwin", "x86_64-unknown-linux-gnu"}
		if len(m.Targets) != len(want) {
			t.Fatalf("expected %d targets, got %d: %v", len(want), len(m.Targets), m.Targets)
		}
		for i, name := range want {
			if m.Targets[i] != name {
				t.Errorf("targets[%d]: expected %q, got %q", i, name, m.Targets[i])
			}
		}
	})

	t.Run("availability flags are preserved", func(t *testing.T) {
		t.Parallel()
		if !m.Available["rustc"]["x86_64-unknown-linux-gnu"] {
			t.Error("expected rustc to be available on x86_64-unknown-linux-gnu")
		}
		if m.Available["rustc"]["aarch64-apple-darwin"] {
			t.Error("expected rustc to be unavailable on aarch64-apple-darwin")
		}
		if !m.Available["rust-src"][WildcardTarget] {
			t.Error("expected rust-src to be available under the wildcard target")
		}
	})
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	t.Run("malformed TOML returns error", func(t *testing.T) {
		t.Parallel()
		if _, err := Parse([]byte("date = [unclosed")); err == nil {
			t.Error("expected error for malformed TOML, got nil")
		}
	})

	t.Run("missing date returns error", func(t *testing.T) {
		t.Parallel()
		if _, err := Parse([]byte(`manifest-version = "2"`)); err == nil {
			t.Error("expected error for missing date, got nil")
		}
	})

	t.Run("garbage date returns error", func(t *testing.T) {
		t.Parallel()
		if _, err := Parse([]byte(`date = "not-a-date"`)); err == nil {
			t.Error("expected error for invalid date, got nil")
		}
	})
}
