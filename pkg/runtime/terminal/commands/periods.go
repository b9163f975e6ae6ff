package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type PeriodsCmd struct {
	session    *Session
	reportType string
}

func NewPeriodsCmd(session *Session) *cobra.Command {
	pc := &PeriodsCmd{session: session}
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "List the periods stored in the configured database for a statement",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.reportType, "type", "", "Statement to list periods for (pl, bs, cf)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func (pc *PeriodsCmd) run(cmd *cobra.Command, _ []string) error {
	rt, err := pc.session.runtime()
	if err != nil {
		return err
	}
	lineItems, err := rt.LineItems()
	if err != nil {
		return err
	}

	statement := strings.ToUpper(strings.TrimSpace(pc.reportType))
	periods, err := lineItems.Periods(cmd.Context(), statement)
	if err != nil {
		return fmt.Errorf("failed to list %s periods: %w", statement, err)
	}
	if len(periods) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No stored periods for %s\n", statement)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(periods, "\n"))
	return nil
}
