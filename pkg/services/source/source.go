// Package source provides the raw line items a rule-set loads for a period.
package source

import (
	"context"
	"errors"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
)

var ErrNoData = errors.New("no line items found")

// Source returns the raw line items of one statement for one period.
// Returned items always carry the requested period.
type Source interface {
	Load(ctx context.Context, reportType, period string) ([]domain.LineItem, error)
}

func stamp(items []domain.LineItem, period string) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, item := range items {
		item.Period = period
		out[i] = item
	}
	return out
}

// Func adapts an ordinary function to the Source interface.
type Func func(ctx context.Context, reportType, period string) ([]domain.LineItem, error)

func (f Func) Load(ctx context.Context, reportType, period string) ([]domain.LineItem, error) {
	return f(ctx, reportType, period)
}

// Static serves the same items for every period.
func Static(items ...domain.LineItem) Source {
	return Func(func(_ context.Context, _, period string) ([]domain.LineItem, error) {
		return stamp(items, period), nil
	})
}
