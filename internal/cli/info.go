package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print a summary of the project",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		defer p.Close()
		fmt.Fprint(cmd.OutOrStdout(), p.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
