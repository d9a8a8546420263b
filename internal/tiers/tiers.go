package tiers

// Tier is one configured group of targets.
type Tier struct {
	// Name is the human-readable tier label, e.g. "Tier 1".
	Name string `yaml:"name"`

	// Targets lists the target triples the tier claims.
	Targets []string `yaml:"targets"`
}

// TargetView is one target inside a rendered tier.
type TargetView struct {
	// Name is the target triple.
	Name string

	// Known reports whether the dataset actually carries data for the
	// target. Templates typically render unknown targets without a link.
	Known bool
}

// TierView is one tier with its targets annotated against the dataset.
type TierView struct {
	Name    string
	Targets []TargetView
}

// Table is the ordered tier view attached to every page render.
type Table []TierView

// NewTable builds a Table from the configured tiers, marking each listed
// target as known or unknown against the dataset's target enumeration.
// Configuration order is preserved; targets the dataset knows but no
// tier claims simply do not appear.
func NewTable(configured []Tier, known []string) Table {
	knownSet := make(map[string]struct{}, len(known))
	for _, triple := range known {
		knownSet[triple] = struct{}{}
	}

	table := make(Table, 0, len(configured))
	for _, tier := range configured {
		view := TierView{
			Name:    tier.Name,
			Targets: make([]TargetView, 0, len(tier.Targets)),
		}
		for _, triple := range tier.Targets {
			_, ok := knownSet[triple]
			view.Targets = append(view.Targets, TargetView{Name: triple, Known: ok})
		}
		table = append(table, view)
	}
	return table
}
