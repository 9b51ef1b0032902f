package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/statenet/pkg/buildinfo"
	"github.com/matzehuels/statenet/pkg/config"
	"github.com/matzehuels/statenet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "statenet"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string // --config, empty for the default location
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Statenet builds higher-order state networks from itinerary data",
		Long: `Statenet turns flight itinerary legs into weighted paths, expands paths into
higher-order Markov state networks and merges per-period networks into a
multilayer network.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default $XDG_CONFIG_HOME/statenet/config.toml)")

	// Register all subcommands
	root.AddCommand(c.pathsCommand())
	root.AddCommand(c.statesCommand())
	root.AddCommand(c.multilayerCommand())
	root.AddCommand(c.intraCommand())
	root.AddCommand(c.filterCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadOptions layers pipeline defaults and the configuration file. Command
// flags are applied on top by the caller.
func (c *CLI) loadOptions() (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	cfg, path, err := config.LoadDefault(c.configPath)
	if err != nil {
		return opts, err
	}
	if path != "" {
		c.Logger.Debug("Loaded config", "path", path)
	}
	cfg.Apply(&opts)
	return opts, nil
}
