package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewTypesCmd(session *Session) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the statements that can be generated",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := session.runtime()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(rt.Service.ListTypes(), "\n"))
			return nil
		},
	}
}
