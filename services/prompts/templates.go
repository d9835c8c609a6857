package prompts

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	"scriptureCircle/errs"
)

const (
	explainTemplate = "explain.tmpl"
	summaryTemplate = "summary.tmpl"
	recapTemplate   = "recap.tmpl"

	// overridePrefix is where operators can drop replacement templates.
	overridePrefix = "prompts/"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// Source supplies optional template overrides, typically a GCS bucket.
type Source interface {
	Read(ctx context.Context, object string) ([]byte, error)
}

var funcs = template.FuncMap{
	"language": func(code string) string {
		switch code {
		case "", "en":
			return "English"
		case "es":
			return "Spanish"
		case "pt":
			return "Portuguese"
		case "fr":
			return "French"
		case "de":
			return "German"
		case "ko":
			return "Korean"
		}
		return code
	},
}

// loadTemplates parses every template, preferring an override from src.
func loadTemplates(ctx context.Context, src Source) (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, 3)
	for _, name := range []string{explainTemplate, summaryTemplate, recapTemplate} {
		text, err := embedded.ReadFile("templates/" + name)
		if err != nil {
			return nil, err
		}
		if src != nil {
			override, err := src.Read(ctx, overridePrefix+name)
			switch {
			case err == nil:
				slog.Info("using prompt override", "template", name)
				text = override
			case errors.Is(err, errs.ErrNotFound):
			default:
				slog.With("error", err.Error()).Warn("failed to read prompt override, using built-in", "template", name)
			}
		}
		t, err := template.New(name).Funcs(funcs).Parse(string(text))
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
