package availability

import (
	"time"

	"github.com/rustavail/rustavail/internal/manifest"
)

// Row is the availability of one package on one target across a
// requested date list.
type Row struct {
	// PerDate holds one entry per requested date, in the same order.
	PerDate []bool

	// LastAvailable is the most recent date the package was present for
	// the target, which may lie outside the requested window. Nil means
	// the package was never seen available.
	LastAvailable *time.Time
}

// Data is the availability dataset assembled from channel manifests.
//
// Enumeration order of targets and packages is first-seen order across
// the ingested manifests. Within a single manifest, names arrive sorted
// (the manifest package sorts them), so a fixed manifest sequence always
// yields the same enumeration. No global sort is applied on top of that.
type Data struct {
	targets  []string
	packages []string

	targetSeen  map[string]struct{}
	packageSeen map[string]struct{}

	// avail is target -> package -> date key -> availability.
	// The wildcard target is stored under its own key and folded into
	// lookups for every concrete target.
	avail map[string]map[string]map[string]bool

	// last is target -> package -> most recent available date.
	last map[string]map[string]time.Time
}

// New creates an empty dataset.
func New() *Data {
	return &Data{
		targetSeen:  make(map[string]struct{}),
		packageSeen: make(map[string]struct{}),
		avail:       make(map[string]map[string]map[string]bool),
		last:        make(map[string]map[string]time.Time),
	}
}

// AddManifests ingests a batch of manifests into the dataset.
func (d *Data) AddManifests(manifests ...*manifest.Manifest) {
	for _, m := range manifests {
		d.addManifest(m)
	}
}

func (d *Data) addManifest(m *manifest.Manifest) {
	for _, triple := range m.Targets {
		if _, ok := d.targetSeen[triple]; !ok {
			d.targetSeen[triple] = struct{}{}
			d.targets = append(d.targets, triple)
		}
	}

	dateKey := m.Date.Format(manifest.DateFormat)
	for _, pkg := range m.Packages {
		if _, ok := d.packageSeen[pkg]; !ok {
			d.packageSeen[pkg] = struct{}{}
			d.packages = append(d.packages, pkg)
		}

		for triple, available := range m.Available[pkg] {
			byPkg, ok := d.avail[triple]
			if !ok {
				byPkg = make(map[string]map[string]bool)
				d.avail[triple] = byPkg
			}
			byDate, ok := byPkg[pkg]
			if !ok {
				byDate = make(map[string]bool)
				byPkg[pkg] = byDate
			}
			byDate[dateKey] = available

			if available {
				d.recordLast(triple, pkg, m.Date)
			}
		}
	}
}

func (d *Data) recordLast(triple, pkg string, date time.Time) {
	byPkg, ok := d.last[triple]
	if !ok {
		byPkg = make(map[string]time.Time)
		d.last[triple] = byPkg
	}
	if prev, ok := byPkg[pkg]; !ok || date.After(prev) {
		byPkg[pkg] = date
	}
}

// Targets returns all known target triples in enumeration order.
// The wildcard pseudo-target is never included.
func (d *Data) Targets() []string {
	return d.targets
}

// Packages returns all known package names in enumeration order.
func (d *Data) Packages() []string {
	return d.packages
}

// Row computes the availability row for a (target, package) pair against
// the given date list. A package published under the wildcard target
// counts as available on every target.
func (d *Data) Row(target, pkg string, dates []time.Time) Row {
	row := Row{PerDate: make([]bool, 0, len(dates))}

	for _, date := range dates {
		key := date.Format(manifest.DateFormat)
		row.PerDate = append(row.PerDate, d.lookup(target, pkg, key))
	}

	if last, ok := d.lastAvailable(target, pkg); ok {
		row.LastAvailable = &last
	}
	return row
}

func (d *Data) lookup(target, pkg, dateKey string) bool {
	if d.avail[target][pkg][dateKey] {
		return true
	}
	return d.avail[manifest.WildcardTarget][pkg][dateKey]
}

func (d *Data) lastAvailable(target, pkg string) (time.Time, bool) {
	last, ok := d.last[target][pkg]
	if wild, wok := d.last[manifest.WildcardTarget][pkg]; wok && (!ok || wild.After(last)) {
		last, ok = wild, true
	}
	return last, ok
}
