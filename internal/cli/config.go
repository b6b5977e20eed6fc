package cli

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/tui"
	"github.com/spf13/cobra"
)

// ConfigCommand handles the config command
type ConfigCommand struct {
	fs       filesystem.FileSystem
	settings *settings
	absolute bool
}

// NewConfigCommand creates the config command
func NewConfigCommand(fs filesystem.FileSystem, settings *settings) *cobra.Command {
	cc := &ConfigCommand{fs: fs, settings: settings}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the configured fixture package paths",
		Long: `Shows the normalized fixture package patterns with their adoption modes
and the exclude patterns. Invalid configuration is reported as a warning.`,
		RunE: cc.Run,
	}

	cmd.Flags().BoolVar(&cc.absolute, "absolute", false, "Resolve patterns against the project root")

	return cmd
}

// Run executes the config command
func (c *ConfigCommand) Run(cmd *cobra.Command, args []string) error {
	rc, err := newRunContext(cmd, c.fs, c.settings)
	if err != nil {
		return err
	}

	cfg := rc.ws.Config()
	out := cmd.OutOrStdout()

	entries := cfg.Paths(!c.absolute)
	if len(entries) == 0 {
		fmt.Fprintln(out, tui.SubtleStyle.Render("No fixture package paths configured."))
		return nil
	}

	for _, entry := range entries {
		modes := make([]string, len(entry.Modes))
		for i, mode := range entry.Modes {
			modes[i] = string(mode)
		}
		fmt.Fprintf(out, "%s: %s\n", entry.Pattern, strings.Join(modes, ", "))
	}

	for _, exclude := range cfg.Excludes() {
		fmt.Fprintf(out, "exclude: %s\n", exclude)
	}

	return nil
}
