package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-fixtures/internal/adopter"
	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/manifest"
	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/jakoblorz/go-fixtures/internal/tui"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

// AdoptCommand handles the adopt command
type AdoptCommand struct {
	fs          filesystem.FileSystem
	settings    *settings
	manifestOut string
	print       bool
}

// NewAdoptCommand creates the adopt command
func NewAdoptCommand(fs filesystem.FileSystem, settings *settings) *cobra.Command {
	ac := &AdoptCommand{fs: fs, settings: settings}

	cmd := &cobra.Command{
		Use:   "adopt",
		Short: "Adopt the configured fixture packages",
		Long: `Discovers the fixture packages configured under extra.fixture-packages.paths,
merges their autoload sections into the root autoload-dev block and writes
the state files below <vendor-dir>/fixture-packages.

The root composer.json itself is not modified. Use --manifest-out to write a
copy with the merged autoload-dev block, or --print to show the block.`,
		RunE: ac.Run,
	}

	cmd.Flags().StringVar(&ac.manifestOut, "manifest-out", "", "Write the root manifest with the merged autoload-dev block to this file")
	cmd.Flags().BoolVar(&ac.print, "print", false, "Print the merged autoload-dev block")

	return cmd
}

// Run executes the adopt command
func (c *AdoptCommand) Run(cmd *cobra.Command, args []string) error {
	rc, err := newRunContext(cmd, c.fs, c.settings)
	if err != nil {
		return err
	}

	plugin := adopter.NewPlugin(adopter.New(c.fs, rc.ws, rc.logger))
	result, err := plugin.Listen(adopter.EventPreAutoloadDump, c.settings.DevMode())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result == nil {
		fmt.Fprintln(out, tui.SubtleStyle.Render("Not in development mode, no fixture packages adopted."))
		return nil
	}

	fmt.Fprint(out, renderAdoptSummary(result))

	if c.print {
		if err := printAutoloadDev(out, rc.ws.Root); err != nil {
			return err
		}
	}

	if c.manifestOut != "" {
		data, err := rc.ws.Root.Render()
		if err != nil {
			return fmt.Errorf("failed to render root manifest: %w", err)
		}

		target := c.manifestOut
		if !filepath.IsAbs(target) {
			target = filepath.Join(rc.ws.RootPath, target)
		}
		if err := filesystem.WriteFileAtomic(c.fs, target, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		fmt.Fprintf(out, "Manifest written to %s\n", target)
	}

	return nil
}

func renderAdoptSummary(result *adopter.Result) string {
	var b strings.Builder

	if len(result.Adopted) == 0 {
		b.WriteString(tui.SubtleStyle.Render("No fixture packages found."))
		b.WriteString("\n")
	} else {
		b.WriteString(tui.SuccessStyle.Render(fmt.Sprintf("✓ Adopted %d fixture package(s)", len(result.Adopted))))
		b.WriteString("\n")
		for _, pkg := range result.Adopted {
			b.WriteString(fmt.Sprintf("  • %s %s\n", pkg.Name, tui.PathStyle.Render("("+pkg.Location+")")))
		}
	}

	for _, pkg := range result.Skipped {
		b.WriteString(tui.SkippedStyle.Render(fmt.Sprintf("  skipped %s, already installed", pkg.Name)))
		b.WriteString("\n")
	}

	if result.Written != nil {
		b.WriteString(fmt.Sprintf("Loader: %s\n", result.Written.Loader))
	}

	return b.String()
}

func printAutoloadDev(w io.Writer, root *manifest.Root) error {
	data, err := models.EncodeJSON(root.DevAutoload)
	if err != nil {
		return fmt.Errorf("failed to encode autoload-dev: %w", err)
	}
	_, err = w.Write(pretty.PrettyOptions(data, manifest.PrettyOptions))
	return err
}
