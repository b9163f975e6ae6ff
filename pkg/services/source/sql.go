package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/statement-atlas/pkg/adapters"
	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/de-tools/statement-atlas/pkg/store/lineitems"
	"github.com/rs/zerolog"
)

// SQL serves line items stored in the line_items table.
type SQL struct {
	store lineitems.Store
}

func NewSQL(store lineitems.Store) *SQL {
	return &SQL{store: store}
}

func (s *SQL) Load(ctx context.Context, reportType, period string) ([]domain.LineItem, error) {
	statement := strings.ToUpper(reportType)
	rows, err := s.store.List(ctx, statement, period)
	if err != nil {
		return nil, fmt.Errorf("failed to read line items: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s for period %s", ErrNoData, statement, period)
	}

	zerolog.Ctx(ctx).Debug().
		Str("statement", statement).
		Str("period", period).
		Int("rows", len(rows)).
		Msg("loaded line items from database")

	items := make([]domain.LineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, adapters.MapStoreLineItemToDomain(row))
	}
	return stamp(items, period), nil
}
