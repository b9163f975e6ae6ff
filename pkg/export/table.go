package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
)

type TableConfig struct {
	IDWidth    int
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:    26,
		NameWidth:  56,
		ValueWidth: 18,
	}
}

const tableTemplate = `
{{.ReportType}} statement for {{.Period}}
Generated At: {{.Metadata.GeneratedAt.Format "2006-01-02 15:04:05"}}
Total Value: {{printf "%.2f" .Metadata.TotalValue}}

{{separator}}
{{header}}
{{separator}}
{{range .Data}}{{formatRow .AccountID .AccountName .Value}}
{{end}}{{separator}}
`

// TableReporter prints reports as fixed-width text tables
type TableReporter struct {
	writer io.Writer
	config TableConfig
	tmpl   *template.Template
}

func NewTableReporter(writer io.Writer) *TableReporter {
	if writer == nil {
		writer = os.Stdout
	}
	r := &TableReporter{
		writer: writer,
		config: DefaultTableConfig(),
	}

	funcMap := template.FuncMap{
		"formatRow": func(id, name string, value float64) string {
			return fmt.Sprintf("| %-*s | %-*s | %*.2f |",
				r.config.IDWidth, id,
				r.config.NameWidth, name,
				r.config.ValueWidth, value)
		},
		"header": func() string {
			return fmt.Sprintf("| %-*s | %-*s | %*s |",
				r.config.IDWidth, "Account",
				r.config.NameWidth, "Name",
				r.config.ValueWidth, "Value")
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", r.config.IDWidth+2),
				strings.Repeat("-", r.config.NameWidth+2),
				strings.Repeat("-", r.config.ValueWidth+2))
		},
	}
	r.tmpl = template.Must(template.New("report").Funcs(funcMap).Parse(tableTemplate))
	return r
}

func (r *TableReporter) Export(_ context.Context, report *domain.ReportResult) error {
	if err := r.tmpl.Execute(r.writer, report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
