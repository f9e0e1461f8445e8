package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/countrydash/internal/adapters/repository"
	"github.com/okian/countrydash/internal/adapters/source"
	app "github.com/okian/countrydash/internal/app"
	"github.com/okian/countrydash/internal/config"
	"github.com/okian/countrydash/pkg/logger"
)

// cli carries state shared by the subcommands once the root has run.
type cli struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "countrydash",
		Short:         "Country table and dashboard over the REST Countries data set",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (overrides "+config.EnvFile+")")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newServeCmd(c), newTableCmd(c), newDashboardCmd(c))
	return root
}

// setup loads configuration (defaults -> optional file -> env) and
// initializes logging.
func (c *cli) setup(cmd *cobra.Command) error {
	if c.configPath != "" {
		if err := os.Setenv(config.EnvFile, c.configPath); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.log = logger.Named("countrydash")

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		c.log.Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	c.cfg = cfg
	return nil
}

// service builds the country service from configuration. schedule is only
// honoured by long-running commands.
func (c *cli) service(schedule string) *app.Service {
	src := source.New(
		source.WithBaseURL(c.cfg.SourceURL),
		source.WithTimeout(time.Duration(c.cfg.FetchTimeoutMS)*time.Millisecond),
		source.WithLogger(c.log.Named("source")),
	)
	store := repository.NewMemoryStore(repository.WithMaxRecords(c.cfg.MaxRecords))
	return app.New(
		app.WithLogger(c.log.Named("service")),
		app.WithSource(src),
		app.WithStore(store),
		app.WithRefreshSchedule(schedule),
		app.WithRefreshTimeout(time.Duration(c.cfg.FetchTimeoutMS)*time.Millisecond),
	)
}
