package cli

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/go-fixtures/internal/workspace"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "FIXTURES"

	workingDirFlag = "working-dir"
	vendorDirFlag  = "vendor-dir"
	noDevFlag      = "no-dev"
	verboseFlag    = "verbose"
)

// settings holds the persistent flags. Every flag can also be set through a
// FIXTURES_ prefixed environment variable, e.g. FIXTURES_VENDOR_DIR.
type settings struct {
	v *viper.Viper
}

func newSettings() *settings {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(workingDirFlag, "")
	v.SetDefault(vendorDirFlag, "")
	v.SetDefault(noDevFlag, false)
	v.SetDefault(verboseFlag, 0)

	return &settings{v: v}
}

func (s *settings) bind(flags *pflag.FlagSet) {
	flags.StringP(workingDirFlag, "d", "", "Start looking for composer.json in this directory")
	flags.String(vendorDirFlag, "", "Override config.vendor-dir of the root manifest")
	flags.Bool(noDevFlag, false, "Run as a production install; nothing is adopted")
	flags.CountP(verboseFlag, "v", "Increase verbosity (-v info, -vv debug)")

	// BindPFlags only fails for a nil flag set.
	_ = s.v.BindPFlags(flags)
}

func (s *settings) WorkingDir() string {
	return s.v.GetString(workingDirFlag)
}

func (s *settings) VendorDir() string {
	return s.v.GetString(vendorDirFlag)
}

func (s *settings) DevMode() bool {
	return !s.v.GetBool(noDevFlag)
}

func (s *settings) Verbosity() int {
	return s.v.GetInt(verboseFlag)
}

func workspaceOptions(s *settings, logger *log.Logger) []workspace.Option {
	options := []workspace.Option{workspace.WithLogger(logger)}
	if dir := s.WorkingDir(); dir != "" {
		options = append(options, workspace.WithWorkingDir(dir))
	}
	return options
}
