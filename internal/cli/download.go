package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <event>...",
	Short: "Download event files from the configured data provider",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		defer p.Close()

		if p.Config.Project.DownloadSettings.ProviderURL == "" {
			return fmt.Errorf("no download provider configured: set seisflow_project.download_settings.provider_url in %s", p.Paths.ConfigFile)
		}
		dl, err := p.Downloads()
		if err != nil {
			return err
		}
		for _, event := range args {
			if err := dl.DownloadEvent(cmd.Context(), event); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s\n", event)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}
