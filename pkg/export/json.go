package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/statement-atlas/pkg/adapters"
	"github.com/de-tools/statement-atlas/pkg/models/domain"
)

// JSONExporter writes one indented JSON document per report
type JSONExporter struct {
	writer io.Writer
}

func NewJSONExporter(writer io.Writer) *JSONExporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &JSONExporter{writer: writer}
}

func (e *JSONExporter) Export(_ context.Context, report *domain.ReportResult) error {
	enc := json.NewEncoder(e.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(adapters.MapDomainReportToAPI(report)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
