package render

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rustavail/rustavail/internal/availability"
	"github.com/rustavail/rustavail/internal/manifest"
	"github.com/rustavail/rustavail/internal/tiers"
)

// pageTemplateName is the internal name of the registered page template.
const pageTemplateName = "target_info"

// Dataset is the query surface the HTML renderer consumes.
// *availability.Data satisfies it; tests use an in-memory fake.
type Dataset interface {
	Targets() []string
	Packages() []string
	Row(target, pkg string, dates []time.Time) availability.Row
}

// Context is the run-scoped auxiliary data attached to every page:
// the tier table and the generation timestamp. It is built once per
// run and shared across all targets.
type Context struct {
	Tiers    tiers.Table
	Datetime string
}

// Page is the render payload for one target.
type Page struct {
	// Target is the target triple the page describes.
	Target string

	// Dates holds the column headers, formatted YYYY-MM-DD, in request
	// order.
	Dates []string

	// Packages holds one row per known package.
	Packages []PackageRow

	// Additional carries the shared render context.
	Additional Context
}

// PackageRow is one table row in a rendered page.
type PackageRow struct {
	Name string

	// Availability has one cell per entry in Page.Dates.
	Availability []bool

	// LastAvailable is the formatted last-available date, or empty if
	// the package was never available on the target.
	LastAvailable string
}

// Renderer renders per-target pages from a parsed page template and an
// output-path pattern.
type Renderer struct {
	page    *template.Template
	pattern string
	logger  *slog.Logger
}

// NewRenderer parses the page template file and prepares a Renderer.
// The template runs in strict mode and may use the streq helper for
// string comparison.
func NewRenderer(templatePath, outputPattern string, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	src, err := os.ReadFile(templatePath) //nolint:gosec // User-provided template path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}

	page, err := template.New(pageTemplateName).
		Funcs(template.FuncMap{
			"streq": func(x, y string) bool { return x == y },
		}).
		Option("missingkey=error").
		Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templatePath, err)
	}

	return &Renderer{
		page:    page,
		pattern: outputPattern,
		logger:  logger,
	}, nil
}

// RenderAll renders one page per target in the dataset's enumeration
// order. The first pattern, directory, file, or template error aborts
// the remaining targets.
func (r *Renderer) RenderAll(data Dataset, dates []time.Time, ctx Context) error {
	for _, target := range data.Targets() {
		r.logger.Info("processing target", "target", target)

		outputPath, err := Path(r.pattern, target)
		if err != nil {
			return err
		}

		if parent := filepath.Dir(outputPath); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0750); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", parent, err)
			}
		}

		r.logger.Info("writing page", "target", target, "path", outputPath)
		if err := r.renderPage(data, target, dates, ctx, outputPath); err != nil {
			return err
		}
		r.logger.Info("target rendered", "target", target, "path", outputPath)
	}
	return nil
}

// renderPage builds the payload for one target and streams the template
// straight into the output file.
func (r *Renderer) renderPage(data Dataset, target string, dates []time.Time, ctx Context, outputPath string) error {
	f, err := os.Create(outputPath) //nolint:gosec // Path comes from the user's output pattern
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", outputPath, err)
	}
	defer f.Close()

	if err := r.page.Execute(f, buildPage(data, target, dates, ctx)); err != nil {
		return fmt.Errorf("failed to render %s for target %s: %w", pageTemplateName, target, err)
	}
	return f.Close()
}

// buildPage assembles the table view for one target.
func buildPage(data Dataset, target string, dates []time.Time, ctx Context) *Page {
	page := &Page{
		Target:     target,
		Dates:      make([]string, 0, len(dates)),
		Additional: ctx,
	}
	for _, date := range dates {
		page.Dates = append(page.Dates, date.Format(manifest.DateFormat))
	}

	for _, pkg := range data.Packages() {
		row := data.Row(target, pkg, dates)
		pkgRow := PackageRow{
			Name:         pkg,
			Availability: row.PerDate,
		}
		if row.LastAvailable != nil {
			pkgRow.LastAvailable = row.LastAvailable.Format(manifest.DateFormat)
		}
		page.Packages = append(page.Packages, pkgRow)
	}
	return page
}
