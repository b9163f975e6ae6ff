package lineitems

import (
	"context"
	"fmt"

	"github.com/de-tools/statement-atlas/pkg/models/store"
	"github.com/de-tools/statement-atlas/pkg/store/sqlite"
	"github.com/jmoiron/sqlx"
)

// Store persists raw line items keyed by statement, period and account.
type Store interface {
	Add(ctx context.Context, items []store.LineItem) error
	List(ctx context.Context, statement, period string) ([]store.LineItem, error)
	Periods(ctx context.Context, statement string) ([]string, error)
}

// SupportsUpsert reports whether Add works on the named database/sql driver.
// Add relies on INSERT ... ON CONFLICT, which MySQL, Snowflake and Databricks
// do not accept.
func SupportsUpsert(driver string) bool {
	switch driver {
	case sqlite.DriverName, "pgx":
		return true
	default:
		return false
	}
}

type lineItemStore struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &lineItemStore{db: db}, nil
}

// Add inserts items, replacing existing rows with the same key. It joins the
// transaction carried by ctx when there is one.
func (s *lineItemStore) Add(ctx context.Context, items []store.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	var ext sqlx.ExtContext = s.db
	if tx := sqlite.GetTransaction(ctx); tx != nil {
		ext = tx
	}

	query := `
		INSERT INTO line_items (statement, period, position, account_id, account_name, value)
		VALUES (:statement, :period, :position, :account_id, :account_name, :value)
		ON CONFLICT (statement, period, account_id)
		DO UPDATE SET position = excluded.position, account_name = excluded.account_name, value = excluded.value`

	for _, item := range items {
		if _, err := sqlx.NamedExecContext(ctx, ext, query, item); err != nil {
			return fmt.Errorf("insert line item %s/%s/%s: %w", item.Statement, item.Period, item.AccountID, err)
		}
	}
	return nil
}

func (s *lineItemStore) List(ctx context.Context, statement, period string) ([]store.LineItem, error) {
	query := s.db.Rebind(`
		SELECT statement, period, position, account_id, account_name, value
		FROM line_items
		WHERE statement = ? AND period = ?
		ORDER BY position, account_id`)

	items := make([]store.LineItem, 0)
	if err := s.db.SelectContext(ctx, &items, query, statement, period); err != nil {
		return nil, fmt.Errorf("query line items: %w", err)
	}
	return items, nil
}

func (s *lineItemStore) Periods(ctx context.Context, statement string) ([]string, error) {
	query := s.db.Rebind(`
		SELECT DISTINCT period
		FROM line_items
		WHERE statement = ?
		ORDER BY period`)

	periods := make([]string, 0)
	if err := s.db.SelectContext(ctx, &periods, query, statement); err != nil {
		return nil, fmt.Errorf("query periods: %w", err)
	}
	return periods, nil
}
