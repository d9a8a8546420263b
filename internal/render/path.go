package render

import (
	"fmt"
	"html/template"
	"strings"
)

// Path evaluates the output-path pattern for one target. The pattern is
// a template with a .target placeholder, run through the same engine as
// page content so a broken pattern fails the same way a broken page
// template does.
func Path(pattern, target string) (string, error) {
	tmpl, err := template.New("output_pattern").Option("missingkey=error").Parse(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid output pattern %q: %w", pattern, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, map[string]string{"target": target}); err != nil {
		return "", fmt.Errorf("invalid output pattern %q: %w", pattern, err)
	}
	return sb.String(), nil
}
