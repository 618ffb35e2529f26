package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var windowsCmd = &cobra.Command{
	Use:   "windows <event>",
	Short: "List the picked windows of an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		defer p.Close()

		win, err := p.Windows()
		if err != nil {
			return err
		}
		channels, err := win.ListChannels(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(channels) == 0 {
			fmt.Fprintf(out, "No windows picked for %s.\n", args[0])
			return nil
		}
		for _, channel := range channels {
			wins, err := win.Get(args[0], channel)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%d windows)\n", channel, len(wins))
			for _, w := range wins {
				fmt.Fprintf(out, "\t%8.2f s to %8.2f s  (weight %.2f)\n", w.StartS, w.EndS, w.Weight)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(windowsCmd)
}
