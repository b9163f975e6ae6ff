package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func NewAccountsCmd(session *Session) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the chart of accounts used to name line items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := session.runtime()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ACCOUNT\tCATEGORY\tNAME")
			for _, acc := range rt.Dependencies.Accounts.Accounts() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", acc.ID, acc.Category, acc.Name)
			}
			return w.Flush()
		},
	}
}
