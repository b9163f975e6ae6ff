// Package pl implements the profit and loss statement rule-set.
package pl

import (
	"context"
	"fmt"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/de-tools/statement-atlas/pkg/services/accounts"
	"github.com/de-tools/statement-atlas/pkg/services/source"
	"github.com/de-tools/statement-atlas/pkg/services/statement"
	"github.com/rs/zerolog"
)

const ReportType = "PL"

const (
	AccountRevenue     = "REV"
	AccountCostOfSales = "COST"
	AccountSGA         = "SGA"
	AccountTaxes       = "TAX"

	AccountGrossProfit     = "GROSS_PROFIT"
	AccountOperatingIncome = "OPERATING_INCOME"
	AccountNetIncome       = "NET_INCOME"
)

const profitMarker = "[Profit] "

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

// Factory registers the rule-set with a statement.Registry
func Factory(deps statement.Dependencies) (statement.RuleSet, error) {
	if deps.Source == nil {
		return nil, fmt.Errorf("profit and loss rule-set requires a data source")
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

func (r *RuleSet) BeforeCalculate(ctx context.Context, items []domain.LineItem) {
	zerolog.Ctx(ctx).Debug().
		Float64("revenue", statement.ValueOf(items, AccountRevenue)).
		Int("items", len(items)).
		Msg("calculating profit and loss")
}

// Calculate appends gross profit, operating income and net income. Absent
// source accounts count as zero.
func (r *RuleSet) Calculate(items []domain.LineItem) []domain.LineItem {
	period := statement.BatchPeriod(items)

	grossProfit := statement.ValueOf(items, AccountRevenue) + statement.ValueOf(items, AccountCostOfSales)
	operatingIncome := grossProfit + statement.ValueOf(items, AccountSGA)
	netIncome := operatingIncome + statement.ValueOf(items, AccountTaxes)

	return statement.Extend(items,
		r.derived(AccountGrossProfit, "Gross profit", grossProfit, period),
		r.derived(AccountOperatingIncome, "Operating income", operatingIncome, period),
		r.derived(AccountNetIncome, "Net income", netIncome, period),
	)
}

func (r *RuleSet) AfterCalculate(ctx context.Context, items []domain.LineItem) {
	zerolog.Ctx(ctx).Debug().
		Float64("gross_profit", statement.ValueOf(items, AccountGrossProfit)).
		Float64("operating_income", statement.ValueOf(items, AccountOperatingIncome)).
		Float64("net_income", statement.ValueOf(items, AccountNetIncome)).
		Msg("profit and loss calculated")
}

func (r *RuleSet) Validate(items []domain.LineItem) error {
	if _, ok := statement.Find(items, AccountNetIncome); !ok {
		return statement.NewValidationError(ReportType, "net_income_present", 0,
			"net income was not calculated")
	}

	revenue := statement.ValueOf(items, AccountRevenue)
	if revenue <= 0 {
		return statement.NewValidationError(ReportType, "positive_revenue", revenue,
			"revenue must be positive, got %.2f", revenue)
	}
	return nil
}

func (r *RuleSet) Format(items []domain.LineItem) []domain.LineItem {
	return statement.Relabel(items, func(item domain.LineItem) string {
		switch item.AccountID {
		case AccountGrossProfit, AccountOperatingIncome, AccountNetIncome:
			return profitMarker + item.AccountName
		default:
			return item.AccountName
		}
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
