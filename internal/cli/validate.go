package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the project's data for consistency",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		defer p.Close()

		v, err := p.Validator()
		if err != nil {
			return err
		}
		report, err := v.ValidateData()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Checked %d events.\n", report.EventsChecked)
		if report.OK() {
			fmt.Fprintln(out, "No problems found.")
			return nil
		}
		for _, issue := range report.Issues {
			fmt.Fprintf(out, "\t%s\n", issue)
		}
		return fmt.Errorf("validation found %d problems", len(report.Issues))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
