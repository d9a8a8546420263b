package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rustavail/rustavail/internal/availability"
	"github.com/rustavail/rustavail/internal/manifest"
)

// Dataset is the query surface the tree exporter consumes.
// *availability.Data satisfies it; tests use an in-memory fake.
type Dataset interface {
	Targets() []string
	Packages() []string
	Row(target, pkg string, dates []time.Time) availability.Row
}

// Tree writes the availability file tree for every target and package
// under root. Any file or directory error aborts the export; a row that
// does not match the date list only suppresses its JSON artifact.
func Tree(data Dataset, dates []time.Time, root string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	pkgs := data.Packages()
	if err := writePackagesJSON(pkgs, filepath.Join(root, "packages.json")); err != nil {
		return err
	}

	for _, target := range data.Targets() {
		targetDir := filepath.Join(root, target)
		if err := os.MkdirAll(targetDir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", targetDir, err)
		}

		for _, pkg := range pkgs {
			row := data.Row(target, pkg, dates)

			if row.LastAvailable != nil {
				if err := writeMarker(filepath.Join(targetDir, pkg), *row.LastAvailable); err != nil {
					return err
				}
			}
			// A package never available on this target gets no marker
			// file at all; absence is the signal.

			if len(row.PerDate) != len(dates) {
				logger.Warn("availability row does not match date list, skipping JSON artifact",
					"target", target,
					"package", pkg,
					"rowLen", len(row.PerDate),
					"dates", len(dates),
				)
				continue
			}
			if err := writeAvailabilityJSON(filepath.Join(targetDir, pkg+".json"), dates, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// writePackagesJSON writes the package manifest as a JSON string array,
// one element per line. The comma layout is written positionally so the
// array stays valid for zero, one, or many packages.
func writePackagesJSON(pkgs []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, "[\n"); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for i, pkg := range pkgs {
		line := "\"" + pkg + "\",\n"
		if i == len(pkgs)-1 {
			line = "\"" + pkg + "\"\n"
		}
		if _, err := io.WriteString(f, line); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if _, err := io.WriteString(f, "]\n"); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// writeMarker writes the plain-text latest-available marker: one
// YYYY-MM-DD line and nothing else.
func writeMarker(path string, date time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, date.Format(manifest.DateFormat)+"\n"); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// writeAvailabilityJSON streams the date->availability object for one
// package. The object is emitted key by key instead of marshalling a
// map, which keeps memory bounded and the key order stable: dates in
// request order, then last_available.
func writeAvailabilityJSON(path string, dates []time.Time, row availability.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, "{"); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for i, date := range dates {
		entry := "\"" + date.Format(manifest.DateFormat) + "\":" + strconv.FormatBool(row.PerDate[i]) + ","
		if _, err := io.WriteString(f, entry); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	last := "null"
	if row.LastAvailable != nil {
		last = "\"" + row.LastAvailable.Format(manifest.DateFormat) + "\""
	}
	if _, err := io.WriteString(f, "\"last_available\":"+last+"}"); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
