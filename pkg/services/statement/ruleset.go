// Package statement runs financial statement rule-sets through a fixed
// load, calculate, validate and format pipeline.
package statement

import (
	"context"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
)

// Tolerance is the largest absolute difference accepted by the arithmetic checks.
const Tolerance = 0.01

// RuleSet supplies the statement specific behaviour of a pipeline run.
//
// Calculate, Validate and Format must not modify the slice they are given.
// Calculate returns the input followed by the derived items; Format returns
// a list of the same length where only AccountName may differ.
type RuleSet interface {
	ReportType() string
	LoadData(ctx context.Context, period string) ([]domain.LineItem, error)
	Calculate(items []domain.LineItem) []domain.LineItem
	// Validate returns a *ValidationError when a statement invariant does not hold
	Validate(items []domain.LineItem) error
	Format(items []domain.LineItem) []domain.LineItem
}

// BeforeCalculator is implemented by rule-sets that observe the raw items
// before Calculate runs. The slice is a copy.
type BeforeCalculator interface {
	BeforeCalculate(ctx context.Context, items []domain.LineItem)
}

// AfterCalculator is implemented by rule-sets that observe the calculated
// items before Validate runs. The slice is a copy.
type AfterCalculator interface {
	AfterCalculate(ctx context.Context, items []domain.LineItem)
}
