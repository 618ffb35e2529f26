// Package cli implements the seisflow command tree. Each command is a thin
// shell over the project components; all real behavior lives in the
// internal packages.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seisflow/seisflow/internal/project"
)

var rootDir string

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "seisflow",
	Short: "Manage seismic inversion projects",
	Long: `Seisflow manages the on-disk artifacts of a seismic inversion
project: events, waveforms, iterations, weights and picked windows, all
under one canonical folder layout.`,
	SilenceUsage: true,
}

// Execute runs the command tree. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root directory")
	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
}

// openProject loads the project at --root. Commands other than init go
// through here so the "uninitialized project" error reads the same
// everywhere.
func openProject() (*project.Project, error) {
	return project.Load(viper.GetString("root"))
}
