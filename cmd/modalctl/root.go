package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	modals "github.com/goliatone/go-modals"
	"github.com/goliatone/go-modals/pkg/activity"
	"github.com/goliatone/go-modals/pkg/logging"
)

// app carries state shared by subcommands once the root pre-run has resolved
// configuration.
type app struct {
	configPath string
	cfg        cliConfig
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "modalctl",
		Short: "Replay modal stack scenarios and inspect the resulting layout",
		Long: `modalctl drives a go-modals Manager from a YAML scenario file and prints
the position tag and z-index of every open modal.

Settings can be provided via a config file (--config or ./modalctl.yaml),
MODALCTL_* environment variables, or the scenario itself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(viper.New(), cmd.Flags(), a.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.NewZap(logging.Config{Level: cfg.LogLevel})
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringP("output", "o", "table", "Output format (table, json)")
	flags.String("state-dir", ".modalctl", "Directory holding saved stack snapshots")

	root.AddCommand(newReplayCmd(a), newRestoreCmd(a))
	return root
}

// managerOptions wires configuration, logging and activity tracing into a
// Manager.
func (a *app) managerOptions(ctx context.Context) []modals.Option {
	trace := activity.HookFunc(func(_ context.Context, event activity.Event) error {
		a.logger.Debug("modal activity",
			zap.String("verb", event.Verb),
			zap.String("object_id", event.ObjectID),
			zap.Any("metadata", event.Metadata))
		return nil
	})
	return []modals.Option{
		modals.WithSettingsPatch(a.cfg.Settings),
		modals.WithLogger(logging.Zap(a.logger)),
		modals.WithActivityHooks(activity.Hooks{trace}),
		modals.WithBaseContext(ctx),
	}
}
