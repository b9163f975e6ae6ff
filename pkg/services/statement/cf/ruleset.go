// Package cf implements the cash flow statement rule-set.
package cf

import (
	"context"
	"fmt"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/de-tools/statement-atlas/pkg/services/accounts"
	"github.com/de-tools/statement-atlas/pkg/services/source"
	"github.com/de-tools/statement-atlas/pkg/services/statement"
	"github.com/rs/zerolog"
)

const ReportType = "CF"

const (
	AccountOperating = "CFO"
	AccountInvesting = "CFI"
	AccountFinancing = "CFF"

	AccountBeginningCash = "BEGINNING_CASH"
	AccountNetIncrease   = "NET_INCREASE"
	AccountEndingCash    = "ENDING_CASH"
)

// DefaultBeginningCash is the opening balance of the reference ledger.
const DefaultBeginningCash = 400000.0

var activityLabels = map[string]string{
	AccountOperating:     "[Operating] ",
	AccountInvesting:     "[Investing] ",
	AccountFinancing:     "[Financing] ",
	AccountBeginningCash: "[Balance] ",
	AccountNetIncrease:   "[Balance] ",
	AccountEndingCash:    "[Balance] ",
}

type RuleSet struct {
	source        source.Source
	accounts      accounts.Lookup
	beginningCash float64
}

type Option func(*RuleSet)

// WithBeginningCash sets the cash balance at the start of the period.
// Deriving it from the prior period's ending balance is left to the caller.
func WithBeginningCash(amount float64) Option {
	return func(r *RuleSet) {
		r.beginningCash = amount
	}
}

func WithAccounts(chart accounts.Lookup) Option {
	return func(r *RuleSet) {
		if chart != nil {
			r.accounts = chart
		}
	}
}

func New(src source.Source, opts ...Option) *RuleSet {
	r := &RuleSet{
		source:        src,
		accounts:      accounts.DefaultChart(),
		beginningCash: DefaultBeginningCash,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func Factory(deps statement.Dependencies) (statement.RuleSet, error) {
	if deps.Source == nil {
		return nil, fmt.Errorf("cash flow rule-set requires a data source")
	}

	opts := []Option{WithAccounts(deps.Accounts)}
	if deps.Config != nil {
		opts = append(opts, WithBeginningCash(deps.Config.CashFlow.BeginningCash))
	}
	return New(deps.Source, opts...), nil
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
		Float64("beginning_cash", r.beginningCash).
		Int("items", len(items)).
		Msg("calculating cash flow")
}

// Calculate appends beginning cash, the net change of the three activities and
// the resulting ending cash.
func (r *RuleSet) Calculate(items []domain.LineItem) []domain.LineItem {
	period := statement.BatchPeriod(items)

	netIncrease := statement.ValueOf(items, AccountOperating) +
		statement.ValueOf(items, AccountInvesting) +
		statement.ValueOf(items, AccountFinancing)
	endingCash := r.beginningCash + netIncrease

	return statement.Extend(items,
		r.derived(AccountBeginningCash, "Cash at beginning of period", r.beginningCash, period),
		r.derived(AccountNetIncrease, "Net increase in cash", netIncrease, period),
		r.derived(AccountEndingCash, "Cash at end of period", endingCash, period),
	)
}

// Validate reconciles beginning cash plus the net change with ending cash.
func (r *RuleSet) Validate(items []domain.LineItem) error {
	values := make(map[string]float64, 3)
	for _, id := range []string{AccountBeginningCash, AccountNetIncrease, AccountEndingCash} {
		item, ok := statement.Find(items, id)
		if !ok {
			return statement.NewValidationError(ReportType, "balances_present", 0,
				"%s was not calculated", id)
		}
		values[id] = item.Value
	}

	expected := values[AccountBeginningCash] + values[AccountNetIncrease]
	ending := values[AccountEndingCash]
	diff := ending - expected
	if !statement.WithinTolerance(diff) {
		return statement.NewValidationError(ReportType, "cash_reconciliation", diff,
			"beginning cash plus net increase is %.2f but ending cash is %.2f", expected, ending)
	}
	return nil
}

func (r *RuleSet) Format(items []domain.LineItem) []domain.LineItem {
	return statement.Relabel(items, func(item domain.LineItem) string {
		return activityLabels[item.AccountID] + item.AccountName
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
