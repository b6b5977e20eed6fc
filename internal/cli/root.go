package cli

import (
	"fmt"

	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	settings := newSettings()

	rootCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Adopt fixture packages into a Composer project",
		Long: `A CLI tool for adopting fixture packages in Composer projects.

Fixture packages live inside the project tree and are never installed. Their
autoload sections are merged into the root autoload-dev block and recorded
in vendor/fixture-packages for tooling that needs to find them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `fixtures adopt` when no subcommand is provided.
			return (&AdoptCommand{fs: fs, settings: settings}).Run(cmd, args)
		},
	}

	settings.bind(rootCmd.PersistentFlags())

	rootCmd.AddCommand(NewAdoptCommand(fs, settings))
	rootCmd.AddCommand(NewListCommand(fs, settings))
	rootCmd.AddCommand(NewNamesCommand(fs, settings))
	rootCmd.AddCommand(NewPathsCommand(fs, settings))
	rootCmd.AddCommand(NewConfigCommand(fs, settings))
	rootCmd.AddCommand(NewInitCommand(fs, settings))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(fs)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
