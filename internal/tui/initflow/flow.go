package initflow

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-fixtures/internal/config"
	"github.com/jakoblorz/go-fixtures/internal/models"
)

// Flow asks for one fixture directory pattern and its adoption modes.
type Flow struct {
	theme *huh.Theme
}

// Result captures the successful output of the flow.
type Result struct {
	Pattern string
	Modes   []models.Mode
}

// NewFlow constructs a Flow with the charm huh theme.
func NewFlow() *Flow {
	return &Flow{theme: huh.ThemeCharm()}
}

// Run executes the form; returns nil result on user abort.
func (f *Flow) Run() (*Result, error) {
	pattern := "Fixtures/Extensions/*"
	modes := []string{string(models.ModeAutoload)}

	opts := []huh.Option[string]{
		huh.NewOption("autoload: the package's regular namespaces", string(models.ModeAutoload)).Selected(true),
		huh.NewOption("autoload-dev: the package's test namespaces", string(models.ModeAutoloadDev)),
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.MultiSelect.Filter.SetEnabled(false)
	keyMap.MultiSelect.Toggle.SetKeys(" ")
	keyMap.MultiSelect.Toggle.SetHelp("space", "toggle selection")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Directory pattern").
				Description("Relative to the project root, * matches one directory level.").
				Value(&pattern).
				Validate(ValidatePattern),
			huh.NewMultiSelect[string]().
				Title("Adopt").
				Options(opts...).
				Value(&modes).
				Validate(func(selected []string) error {
					if len(selected) == 0 {
						return fmt.Errorf("select at least one section")
					}
					return nil
				}),
		).
			Title("Fixture Packages").
			Description("Configure a directory holding fixture packages."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	return NewResult(pattern, modes)
}

// NewResult validates pattern and mode names into a Result.
func NewResult(pattern string, modeNames []string) (*Result, error) {
	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}

	result := &Result{Pattern: config.NormalizePath(pattern)}
	for _, name := range modeNames {
		mode, err := models.ParseMode(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(result.Modes, mode) {
			result.Modes = append(result.Modes, mode)
		}
	}
	if len(result.Modes) == 0 {
		return nil, fmt.Errorf("no adoption mode given")
	}

	return result, nil
}

// ValidatePattern rejects patterns that can never match a package directory.
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" || config.NormalizePath(pattern) == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	return nil
}
