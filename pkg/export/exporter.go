// Package export hands finished statements to their consumers.
package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/de-tools/statement-atlas/pkg/adapters"
	"github.com/de-tools/statement-atlas/pkg/models/domain"
)

// Exporter delivers a generated report. Exporters that buffer output also
// implement io.Closer and must be closed once every report has been exported.
type Exporter interface {
	Export(ctx context.Context, report *domain.ReportResult) error
}

// MarshalReport encodes a report in its public JSON form.
func MarshalReport(report *domain.ReportResult) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report is nil")
	}
	body, err := json.Marshal(adapters.MapDomainReportToAPI(report))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return body, nil
}

// Multi exports every report to each exporter in turn.
type Multi []Exporter

func (m Multi) Export(ctx context.Context, report *domain.ReportResult) error {
	for _, e := range m {
		if err := e.Export(ctx, report); err != nil {
			return err
		}
	}
	return nil
}
