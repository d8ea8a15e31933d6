package render

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model"
)

//go:embed templates/report.html.tmpl
var reportTemplate string

// HTML renders a report snapshot as a standalone HTML document
type HTML struct {
	tmpl *template.Template
}

// NewHTML parses the embedded report template
func NewHTML() (*HTML, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"title": titleCase,
	}).Parse(reportTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse report template")
	}
	return &HTML{tmpl: tmpl}, nil
}

func (r *HTML) Render(ctx context.Context, snapshot *model.ReportSnapshot) ([]byte, error) {
	if snapshot == nil {
		return nil, goerr.New("nil snapshot")
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, snapshot); err != nil {
		return nil, goerr.Wrap(err, "failed to render report")
	}
	return buf.Bytes(), nil
}

func (r *HTML) ContentType() string {
	return "text/html; charset=utf-8"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	for i := range b {
		if b[i] == '_' {
			b[i] = ' '
		}
	}
	return string(b)
}
