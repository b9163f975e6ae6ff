package commands

import (
	"fmt"

	"github.com/de-tools/statement-atlas/pkg/adapters"
	"github.com/de-tools/statement-atlas/pkg/models/store"
	"github.com/de-tools/statement-atlas/pkg/services/source"
	"github.com/de-tools/statement-atlas/pkg/store/lineitems"
	"github.com/de-tools/statement-atlas/pkg/store/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type SeedCmd struct {
	session *Session
	period  string
}

func NewSeedCmd(session *Session) *cobra.Command {
	sc := &SeedCmd{session: session}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the reference ledger into the configured database",
		Long: "Load the reference ledger into the configured database.\n\n" +
			"Rows are upserted with ON CONFLICT, so only the sqlite and pgx drivers are supported.",
		RunE: sc.run,
	}

	cmd.Flags().StringVar(&sc.period, "period", "", "Period to store the reference ledger under")
	_ = cmd.MarkFlagRequired("period")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) (err error) {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	rt, err := sc.session.runtime()
	if err != nil {
		return err
	}
	if !lineitems.SupportsUpsert(rt.Config.Database.Driver) {
		return fmt.Errorf("seed does not support the %q driver, use sqlite or pgx", rt.Config.Database.Driver)
	}
	db, err := rt.DB()
	if err != nil {
		return err
	}
	lineItems, err := rt.LineItems()
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	txCtx := sqlite.WithTransaction(ctx, tx)

	ref := source.NewReference()
	total := 0
	for _, reportType := range ref.ReportTypes() {
		items, err := ref.Load(ctx, reportType, sc.period)
		if err != nil {
			return err
		}
		rows := make([]store.LineItem, 0, len(items))
		for i, item := range items {
			rows = append(rows, adapters.MapDomainLineItemToStore(reportType, i, item))
		}
		if err := lineItems.Add(txCtx, rows); err != nil {
			return fmt.Errorf("failed to store %s line items: %w", reportType, err)
		}
		total += len(rows)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	logger.Info().Str("period", sc.period).Int("rows", total).Msg("reference ledger stored")
	fmt.Fprintf(cmd.OutOrStdout(), "Stored %d line items for %s\n", total, sc.period)
	return nil
}
