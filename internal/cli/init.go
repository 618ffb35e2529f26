package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seisflow/seisflow/internal/project"
)

var initName string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new project at --root",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := project.Initialize(viper.GetString("root"), initName)
		if err != nil {
			return err
		}
		defer p.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized project %q at %s\n",
			p.Config.Project.ProjectName, p.Paths.Root)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "project name (defaults to "+project.DefaultProjectName+")")
	rootCmd.AddCommand(initCmd)
}
