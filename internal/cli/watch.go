package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seisflow/seisflow/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep event and weight folders in sync with disk until interrupted",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p, err := openProject()
	if err != nil {
		return err
	}
	defer p.Close()

	w, err := watcher.New()
	if err != nil {
		return err
	}
	defer w.Stop()

	ev, err := p.Events()
	if err != nil {
		return err
	}
	if err := w.Watch(ev.Folder(), ev); err != nil {
		return err
	}
	rs, err := p.ReferenceStations()
	if err != nil {
		return err
	}
	if err := w.Watch(rs.Folder(), rs); err != nil {
		return err
	}
	ws, err := p.Weights()
	if err != nil {
		return err
	}
	if err := w.Watch(p.Paths.Weights, ws); err != nil {
		return err
	}

	w.Start()
	fmt.Fprintln(cmd.OutOrStdout(), "Watching project folders. Press Ctrl-C to stop.")
	<-ctx.Done()
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
