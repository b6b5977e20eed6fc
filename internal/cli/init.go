package cli

import (
	"fmt"

	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/manifest"
	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/jakoblorz/go-fixtures/internal/tui/initflow"
	"github.com/spf13/cobra"
)

// InitCommand handles the init command
type InitCommand struct {
	fs       filesystem.FileSystem
	settings *settings
	pattern  string
	modes    []string
	write    bool
}

// NewInitCommand creates the init command
func NewInitCommand(fs filesystem.FileSystem, settings *settings) *cobra.Command {
	ic := &InitCommand{fs: fs, settings: settings}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Configure a fixture package directory",
		Long: `Asks for a directory pattern and the sections to adopt, then prints the
extra.fixture-packages block to add to composer.json. With --write the
root manifest is updated in place.

Pass --pattern (and optionally --mode) to skip the interactive form.`,
		RunE: ic.Run,
	}

	cmd.Flags().StringVar(&ic.pattern, "pattern", "", "Directory pattern, e.g. Fixtures/Extensions/*")
	cmd.Flags().StringSliceVar(&ic.modes, "mode", []string{string(models.ModeAutoload)}, "Sections to adopt (autoload, autoload-dev)")
	cmd.Flags().BoolVar(&ic.write, "write", false, "Add the pattern to the root composer.json")

	return cmd
}

// Run executes the init command
func (c *InitCommand) Run(cmd *cobra.Command, args []string) error {
	result, err := c.result()
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	out := cmd.OutOrStdout()
	if !c.write {
		snippet, err := initflow.RenderSnippet(result)
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		fmt.Fprintln(out, snippet)
		return nil
	}

	rc, err := newRunContext(cmd, c.fs, c.settings)
	if err != nil {
		return err
	}

	manifestPath := rc.ws.Root.Path
	data, err := c.fs.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	updated, err := manifest.SetFixturePath(data, result.Pattern, result.Modes)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", manifestPath, err)
	}

	if err := filesystem.WriteFileAtomic(c.fs, manifestPath, updated, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}

	fmt.Fprint(out, initflow.RenderSuccess(result, manifestPath))
	return nil
}

func (c *InitCommand) result() (*initflow.Result, error) {
	if c.pattern != "" {
		return initflow.NewResult(c.pattern, c.modes)
	}

	result, err := initflow.NewFlow().Run()
	if err != nil {
		return nil, fmt.Errorf("init flow failed: %w", err)
	}
	return result, nil
}
