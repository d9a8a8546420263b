package manifest

import (
	"fmt"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DateFormat is the calendar date layout used throughout the tool,
// matching the date stamps in channel manifests and in all written
// artifacts.
const DateFormat = "2006-01-02"

// WildcardTarget marks a package entry that applies to every target.
// Target-independent packages such as rust-src are published under it.
const WildcardTarget = "*"

// Manifest is the availability view of one daily channel manifest.
type Manifest struct {
	// Date is the manifest's own date stamp (UTC midnight).
	Date time.Time

	// Packages lists package names in sorted order.
	// Sorting here keeps enumeration deterministic between runs even
	// though TOML table order is lost during decoding.
	Packages []string

	// Targets lists every target triple seen in the manifest, sorted,
	// excluding WildcardTarget.
	Targets []string

	// Available maps package name -> target triple -> availability.
	Available map[string]map[string]bool
}

// manifestTOML mirrors the subset of the channel manifest schema we decode.
type manifestTOML struct {
	ManifestVersion string             `toml:"manifest-version"`
	Date            string             `toml:"date"`
	Pkg             map[string]pkgTOML `toml:"pkg"`
}

type pkgTOML struct {
	Target map[string]targetTOML `toml:"target"`
}

type targetTOML struct {
	Available bool `toml:"available"`
}

// Parse decodes a channel manifest document into its availability view.
// It returns an error if the document is not valid TOML or carries no
// parseable date stamp.
func Parse(data []byte) (*Manifest, error) {
	var raw manifestTOML
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode channel manifest: %w", err)
	}

	date, err := time.Parse(DateFormat, raw.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest date %q: %w", raw.Date, err)
	}

	m := &Manifest{
		Date:      date.UTC(),
		Available: make(map[string]map[string]bool, len(raw.Pkg)),
	}

	targetSet := make(map[string]struct{})
	for name, pkg := range raw.Pkg {
		m.Packages = append(m.Packages, name)
		avail := make(map[string]bool, len(pkg.Target))
		for triple, t := range pkg.Target {
			avail[triple] = t.Available
			if triple != WildcardTarget {
				targetSet[triple] = struct{}{}
			}
		}
		m.Available[name] = avail
	}
	sort.Strings(m.Packages)

	m.Targets = make([]string, 0, len(targetSet))
	for triple := range targetSet {
		m.Targets = append(m.Targets, triple)
	}
	sort.Strings(m.Targets)

	return m, nil
}
