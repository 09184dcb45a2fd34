package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

// Render substitutes values into the {{.name}} placeholders of tmpl.
// A placeholder without a value is an error rather than an empty string.
func Render(name, tmpl string, values map[string]string) (string, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, values); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return sb.String(), nil
}
