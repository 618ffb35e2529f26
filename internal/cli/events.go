package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seisflow/seisflow/internal/catalog"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the project's events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all events",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		defer p.Close()

		ev, err := p.Events()
		if err != nil {
			return err
		}
		names, err := ev.List()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d events in project:\n", len(names))
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "\t%s\n", name)
		}
		return nil
	},
}

var eventsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of events",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		defer p.Close()

		ev, err := p.Events()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", ev.Count())
		return nil
	},
}

var eventsInfoCmd = &cobra.Command{
	Use:   "info <event>",
	Short: "Show one event's metadata and waveform coverage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		defer p.Close()

		q, err := p.Query()
		if err != nil {
			return err
		}
		details, err := q.EventDetails(catalog.Key(args[0]))
		if err != nil {
			return err
		}

		rec := details.Record
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Event %s\n", rec.Key())
		fmt.Fprintf(out, "\tLatitude: %.3f, Longitude: %.3f, Depth: %.1f km\n",
			rec.Float("latitude"), rec.Float("longitude"), rec.Float("depth_in_km"))
		fmt.Fprintf(out, "\tMagnitude: %.2f\n", rec.Float("magnitude"))
		fmt.Fprintf(out, "\tRegion: %s\n", rec.String("region"))
		fmt.Fprintf(out, "\tRaw waveform files: %d\n", details.RawFileCount)
		fmt.Fprintf(out, "\tIterations: %v\n", details.Iterations)
		return nil
	},
}

func init() {
	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsCountCmd)
	eventsCmd.AddCommand(eventsInfoCmd)
	rootCmd.AddCommand(eventsCmd)
}
