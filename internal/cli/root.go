package cli

import (
	"github.com/foldergen-labs/foldergen/internal/branding"
	"github.com/foldergen-labs/foldergen/internal/config"
	"github.com/foldergen-labs/foldergen/internal/logger"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a fixed project folder skeleton (Animations, Fonts, Images, ...)
under a base directory, optionally seeding empty folders with a placeholder file
so version control keeps them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		logger.SetLevel(config.Get(config.KeyLogLevel))
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
