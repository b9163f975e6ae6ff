// Package bs implements the balance sheet rule-set.
package bs

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/de-tools/statement-atlas/pkg/services/accounts"
	"github.com/de-tools/statement-atlas/pkg/services/source"
	"github.com/de-tools/statement-atlas/pkg/services/statement"
	"github.com/rs/zerolog"
)

const ReportType = "BS"

// Account ids are grouped by prefix.
const (
	PrefixAsset     = "ASSET_"
	PrefixLiability = "LIAB_"
	PrefixEquity    = "EQUITY_"
	PrefixTotal     = "TOTAL_"
)

const (
	AccountTotalAssets      = "TOTAL_ASSETS"
	AccountTotalLiabilities = "TOTAL_LIABILITIES"
	AccountTotalEquity      = "TOTAL_EQUITY"
)

var categoryLabels = []struct {
	prefix string
	label  string
}{
	{PrefixAsset, "[Asset] "},
	{PrefixLiability, "[Liability] "},
	{PrefixEquity, "[Equity] "},
	{PrefixTotal, "[Total] "},
}

type RuleSet struct {
	source   source.Source
	accounts accounts.Lookup
}

func New(src source.Source, chart accounts.Lookup) *RuleSet {
	if chart == nil {
		chart = accounts.DefaultChart()
	}
	return &RuleSet{source: src, accounts: chart}
}

func Factory(deps statement.Dependencies) (statement.RuleSet, error) {
	if deps.Source == nil {
		return nil, fmt.Errorf("balance sheet rule-set requires a data source")
	}
	return New(deps.Source, deps.Accounts), nil
}

func (r *RuleSet) ReportType() string {
	return ReportType
}

func (r *RuleSet) LoadData(ctx context.Context, period string) ([]domain.LineItem, error) {
	items, err := r.source.Load(ctx, ReportType, period)
	if err != nil {
		return nil, err
	}
	return statement.Relabel(items, func(item domain.LineItem) string {
		if item.AccountName != "" {
			return item.AccountName
		}
		return r.accounts.Name(item.AccountID, item.AccountID)
	}), nil
}

// Calculate appends the three category totals. Assets are summed as signed;
// liabilities and equity are summed by magnitude and stored negative. An empty
// category totals +0, never -0.
func (r *RuleSet) Calculate(items []domain.LineItem) []domain.LineItem {
	period := statement.BatchPeriod(items)

	totalAssets := statement.SumWhere(items, hasPrefix(PrefixAsset))
	totalLiabilities := negate(sumAbs(items, PrefixLiability))
	totalEquity := negate(sumAbs(items, PrefixEquity))

	return statement.Extend(items,
		r.derived(AccountTotalAssets, "Total assets", totalAssets, period),
		r.derived(AccountTotalLiabilities, "Total liabilities", totalLiabilities, period),
		r.derived(AccountTotalEquity, "Total equity", totalEquity, period),
	)
}

func (r *RuleSet) AfterCalculate(ctx context.Context, items []domain.LineItem) {
	zerolog.Ctx(ctx).Debug().
		Float64("total_assets", statement.ValueOf(items, AccountTotalAssets)).
		Float64("total_liabilities", statement.ValueOf(items, AccountTotalLiabilities)).
		Float64("total_equity", statement.ValueOf(items, AccountTotalEquity)).
		Msg("balance sheet totals calculated")
}

// Validate checks the accounting equation: assets + liabilities + equity must
// be zero within statement.Tolerance under the sign convention.
func (r *RuleSet) Validate(items []domain.LineItem) error {
	totals := make(map[string]float64, 3)
	for _, id := range []string{AccountTotalAssets, AccountTotalLiabilities, AccountTotalEquity} {
		item, ok := statement.Find(items, id)
		if !ok {
			return statement.NewValidationError(ReportType, "totals_present", 0,
				"%s was not calculated", id)
		}
		totals[id] = item.Value
	}

	assets := totals[AccountTotalAssets]
	liabilities := totals[AccountTotalLiabilities]
	equity := totals[AccountTotalEquity]
	diff := assets + liabilities + equity
	if !statement.WithinTolerance(diff) {
		return statement.NewValidationError(ReportType, "accounting_equation", diff,
			"assets %.2f do not match liabilities %.2f and equity %.2f: discrepancy %.2f",
			assets, math.Abs(liabilities), math.Abs(equity), diff)
	}
	return nil
}

func (r *RuleSet) Format(items []domain.LineItem) []domain.LineItem {
	return statement.Relabel(items, func(item domain.LineItem) string {
		for _, c := range categoryLabels {
			if strings.HasPrefix(item.AccountID, c.prefix) {
				return c.label + item.AccountName
			}
		}
		return item.AccountName
	})
}

func (r *RuleSet) derived(id, fallback string, value float64, period string) domain.LineItem {
	return domain.LineItem{
		AccountID:   id,
		AccountName: r.accounts.Name(id, fallback),
		Value:       value,
		Period:      period,
	}
}

func hasPrefix(prefix string) func(domain.LineItem) bool {
	return func(item domain.LineItem) bool {
		return strings.HasPrefix(item.AccountID, prefix)
	}
}

func sumAbs(items []domain.LineItem, prefix string) float64 {
	total := 0.0
	for _, item := range items {
		if strings.HasPrefix(item.AccountID, prefix) {
			total += math.Abs(item.Value)
		}
	}
	return total
}

// negate flips the sign of v, keeping zero as +0.
func negate(v float64) float64 {
	if v == 0 {
		return 0
	}
	return -v
}
