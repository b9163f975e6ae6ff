package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
)

var referenceData = map[string][]domain.LineItem{
	"PL": {
		{AccountID: "REV", AccountName: "Revenue", Value: 1000000},
		{AccountID: "COST", AccountName: "Cost of sales", Value: -600000},
		{AccountID: "SGA", AccountName: "Selling, general and administrative expenses", Value: -200000},
		{AccountID: "TAX", AccountName: "Income taxes", Value: -50000},
	},
	"BS": {
		{AccountID: "ASSET_CASH", AccountName: "Cash and equivalents", Value: 500000},
		{AccountID: "ASSET_RECEIVABLES", AccountName: "Accounts receivable", Value: 300000},
		{AccountID: "ASSET_PPE", AccountName: "Property, plant and equipment", Value: 2000000},
		{AccountID: "LIAB_PAYABLES", AccountName: "Accounts payable", Value: -400000},
		{AccountID: "LIAB_LONG_TERM_DEBT", AccountName: "Long-term debt", Value: -1000000},
		{AccountID: "EQUITY_SHARE_CAPITAL", AccountName: "Share capital", Value: -800000},
		{AccountID: "EQUITY_RETAINED_EARNINGS", AccountName: "Retained earnings", Value: -600000},
	},
	"CF": {
		{AccountID: "CFO", AccountName: "Net cash from operating activities", Value: 300000},
		{AccountID: "CFI", AccountName: "Net cash from investing activities", Value: -150000},
		{AccountID: "CFF", AccountName: "Net cash from financing activities", Value: -100000},
	},
}

// Reference serves the same fixed sample ledger for every period.
type Reference struct{}

func NewReference() *Reference {
	return &Reference{}
}

func (r *Reference) Load(_ context.Context, reportType, period string) ([]domain.LineItem, error) {
	items, ok := referenceData[strings.ToUpper(reportType)]
	if !ok {
		return nil, fmt.Errorf("%w: no reference data for %s", ErrNoData, reportType)
	}
	return stamp(items, period), nil
}

// ReportTypes lists the statements with reference data
func (r *Reference) ReportTypes() []string {
	return []string{"BS", "CF", "PL"}
}
