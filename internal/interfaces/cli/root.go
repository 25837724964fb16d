// Package cli defines the talentctl command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configPath string

// NewRootCommand builds the talentctl root with all subcommands mounted.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "talentctl",
		Short: "TalentMatch-AI control tool",
		Long: "talentctl runs and administers the TalentMatch-AI recruitment " +
			"platform: the API server, schema migrations, and version info.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c",
		"configs/config.yaml", "path to the configuration file")

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
