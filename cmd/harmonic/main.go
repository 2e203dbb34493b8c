package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"harmonic/internal/config"
	"harmonic/internal/engine"
	"harmonic/internal/logging"
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	// Global flags
	verbose    bool
	configPath string

	logger *zap.Logger
	cfg    *config.Config
	engine *engine.Engine
}

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "harmonic",
		Short: "harmonic - digit reduction, pattern matching and grid overlays",
		Long: `harmonic reduces integers to single digits, finds named digit patterns,
builds integer grids from cell formulas, overlays two grids and derives
display attributes (frequency, colour, gateway flag) for each digit.

Configuration is read from harmonic.yaml when present; HARMONIC_MODULUS,
HARMONIC_FREQUENCY_BASE, HARMONIC_MAX_CELLS, HARMONIC_LOG_LEVEL and
HARMONIC_DEBUG override it.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
			_ = logging.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultConfigPath, "Config file (missing file means defaults)")

	root.AddCommand(
		a.reduceCmd(),
		a.attrsCmd(),
		a.profileCmd(),
		a.patternsCmd(),
		a.matchCmd(),
		a.gridCmd(),
		a.overlayCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads configuration, installs logging and builds the engine.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.setupLogger(); err != nil {
		return err
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.verbose {
		logging.SetLogger(a.logger)
	} else if err := logging.Initialize(cfg.Logging, nil); err != nil {
		return err
	}
	logging.Get(logging.CategoryCLI).Debug("Running %s with config %s", cmd.CommandPath(), a.configPath)
	a.logger.Debug("Configuration loaded",
		zap.String("path", a.configPath),
		zap.Int("base", cfg.Reducer.Base),
		zap.Int("frequency_base", cfg.Attributes.FrequencyBase))

	a.cfg = cfg
	a.engine, err = engine.New(cfg)
	return err
}

// setupLogger builds the CLI's own zap logger.
func (a *app) setupLogger() error {
	zcfg := zap.NewProductionConfig()
	if a.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	a.logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
