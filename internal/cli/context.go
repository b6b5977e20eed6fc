package cli

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/logging"
	"github.com/jakoblorz/go-fixtures/internal/registry"
	"github.com/jakoblorz/go-fixtures/internal/state"
	"github.com/jakoblorz/go-fixtures/internal/workspace"
	"github.com/spf13/cobra"
)

// runContext is the detected workspace plus the logger of one invocation.
type runContext struct {
	fs     filesystem.FileSystem
	ws     *workspace.Workspace
	logger *log.Logger
}

func newRunContext(cmd *cobra.Command, fs filesystem.FileSystem, s *settings) (*runContext, error) {
	logger := logging.New(cmd.ErrOrStderr(), s.Verbosity())

	ws := workspace.New(fs, workspaceOptions(s, logger)...)
	if err := ws.Detect(); err != nil {
		return nil, fmt.Errorf("failed to detect workspace: %w", err)
	}

	if dir := s.VendorDir(); dir != "" {
		ws.Root.VendorDir = filepath.ToSlash(dir)
	}

	return &runContext{fs: fs, ws: ws, logger: logger}, nil
}

func (rc *runContext) store() *state.Store {
	return state.NewStore(rc.fs, rc.ws.Root.VendorPath(), rc.logger)
}

func (rc *runContext) registry() *registry.Registry {
	return registry.New(rc.fs, rc.store().Dir())
}
