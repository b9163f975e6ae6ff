package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"gopkg.in/yaml.v3"
)

type fileItem struct {
	AccountID   string  `yaml:"account_id"`
	AccountName string  `yaml:"account_name"`
	Value       float64 `yaml:"value"`
}

type fileDocument struct {
	Periods map[string]map[string][]fileItem `yaml:"periods"`
}

// File serves line items read from a YAML ledger:
//
//	periods:
//	  2024-Q1:
//	    PL:
//	      - account_id: REV
//	        account_name: Revenue
//	        value: 1000000
type File struct {
	periods map[string]map[string][]domain.LineItem
}

func NewFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer f.Close()

	return ParseFile(f)
}

func ParseFile(r io.Reader) (*File, error) {
	var doc fileDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse ledger file: %w", err)
	}

	periods := make(map[string]map[string][]domain.LineItem, len(doc.Periods))
	for period, statements := range doc.Periods {
		byType := make(map[string][]domain.LineItem, len(statements))
		for reportType, rows := range statements {
			items := make([]domain.LineItem, 0, len(rows))
			seen := make(map[string]struct{}, len(rows))
			for _, row := range rows {
				if row.AccountID == "" {
					return nil, fmt.Errorf("ledger %s/%s contains an item without account_id", period, reportType)
				}
				if _, dup := seen[row.AccountID]; dup {
					return nil, fmt.Errorf("ledger %s/%s lists account %s more than once", period, reportType, row.AccountID)
				}
				seen[row.AccountID] = struct{}{}
				items = append(items, domain.LineItem{
					AccountID:   row.AccountID,
					AccountName: row.AccountName,
					Value:       row.Value,
					Period:      period,
				})
			}
			byType[strings.ToUpper(reportType)] = items
		}
		periods[period] = byType
	}
	return &File{periods: periods}, nil
}

func (f *File) Load(_ context.Context, reportType, period string) ([]domain.LineItem, error) {
	items, ok := f.periods[period][strings.ToUpper(reportType)]
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("%w: %s for period %s", ErrNoData, reportType, period)
	}
	return stamp(items, period), nil
}
