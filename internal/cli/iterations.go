package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var iterationsCmd = &cobra.Command{
	Use:   "iterations",
	Short: "Manage iteration sets",
}

var iterationsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an iteration for every event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		defer p.Close()

		iters, err := p.Iterations()
		if err != nil {
			return err
		}
		if err := iters.Create(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created iteration %s\n", args[0])
		return nil
	},
}

var iterationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all iterations",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		defer p.Close()

		iters, err := p.Iterations()
		if err != nil {
			return err
		}
		names, err := iters.List()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d iterations:\n", len(names))
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "\t%s\n", name)
		}
		return nil
	},
}

func init() {
	iterationsCmd.AddCommand(iterationsCreateCmd)
	iterationsCmd.AddCommand(iterationsListCmd)
	rootCmd.AddCommand(iterationsCmd)
}
