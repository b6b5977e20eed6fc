package cli

import (
	"fmt"
	"io"

	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/manifest"
	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// ListCommand handles the list, names and paths commands. All three read the
// state written by the last adopt run.
type ListCommand struct {
	fs       filesystem.FileSystem
	settings *settings
	types    []string
	format   string
	render   func(w io.Writer, packages []models.AdoptedPackage, format string) error
}

// NewListCommand creates the list command
func NewListCommand(fs filesystem.FileSystem, settings *settings) *cobra.Command {
	lc := &ListCommand{fs: fs, settings: settings, render: renderPackages}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the adopted fixture packages",
		RunE:  lc.Run,
	}
	lc.addFlags(cmd)

	return cmd
}

// NewNamesCommand creates the names command
func NewNamesCommand(fs filesystem.FileSystem, settings *settings) *cobra.Command {
	lc := &ListCommand{fs: fs, settings: settings, render: renderNames}

	cmd := &cobra.Command{
		Use:   "names",
		Short: "Print the names of the adopted fixture packages",
		RunE:  lc.Run,
	}
	lc.addFlags(cmd)

	return cmd
}

// NewPathsCommand creates the paths command
func NewPathsCommand(fs filesystem.FileSystem, settings *settings) *cobra.Command {
	lc := &ListCommand{fs: fs, settings: settings, render: renderPaths}

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the absolute paths of the adopted fixture packages",
		RunE:  lc.Run,
	}
	lc.addFlags(cmd)

	return cmd
}

func (c *ListCommand) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&c.types, "type", "t", nil, "Only include packages of these types (comma separated or repeated)")
	cmd.Flags().StringVar(&c.format, "format", formatText, "Output format (text|json)")
}

// Run executes the command
func (c *ListCommand) Run(cmd *cobra.Command, args []string) error {
	if c.format != formatText && c.format != formatJSON {
		return fmt.Errorf("invalid format %q (must be text or json)", c.format)
	}

	rc, err := newRunContext(cmd, c.fs, c.settings)
	if err != nil {
		return err
	}

	packages, err := rc.registry().Packages(models.ParseTypeFilter(c.types)...)
	if err != nil {
		return fmt.Errorf("failed to read adopted packages: %w", err)
	}

	return c.render(cmd.OutOrStdout(), packages, c.format)
}

func renderPackages(w io.Writer, packages []models.AdoptedPackage, format string) error {
	if format == formatJSON {
		if packages == nil {
			packages = []models.AdoptedPackage{}
		}
		return writeJSON(w, packages)
	}

	for _, pkg := range packages {
		fmt.Fprintf(w, "%s\t%s\t%s\n", pkg.Name, pkg.Type, pkg.Path)
	}
	return nil
}

func renderNames(w io.Writer, packages []models.AdoptedPackage, format string) error {
	names := make([]string, len(packages))
	for i, pkg := range packages {
		names[i] = pkg.Name
	}

	if format == formatJSON {
		return writeJSON(w, names)
	}

	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

func renderPaths(w io.Writer, packages []models.AdoptedPackage, format string) error {
	if format == formatJSON {
		paths := models.NewObject()
		for _, pkg := range packages {
			paths.Set(pkg.Name, pkg.Path)
		}
		return writeJSON(w, paths)
	}

	for _, pkg := range packages {
		fmt.Fprintf(w, "%s\t%s\n", pkg.Name, pkg.Path)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := models.EncodeJSON(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = w.Write(pretty.PrettyOptions(data, manifest.PrettyOptions))
	return err
}
