package modals

import (
	"context"

	"github.com/goliatone/go-modals/pkg/activity"
	"github.com/goliatone/go-modals/rules"
)

// Option configures a Manager.
type Option func(*managerConfig)

type managerConfig struct {
	settings       Settings
	logger         Logger
	evaluator      rules.Evaluator
	activityHooks  activity.Hooks
	activityConfig activity.Config
	baseContext    context.Context
}

func applyOptions(opts []Option) managerConfig {
	cfg := managerConfig{
		settings:       DefaultSettings(),
		logger:         noopLogger{},
		activityConfig: activity.Config{Enabled: true},
		baseContext:    context.Background(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSettings replaces the initial settings.
func WithSettings(settings Settings) Option {
	return func(cfg *managerConfig) {
		cfg.settings = settings
	}
}

// WithSettingsPatch layers patch over the initial settings.
func WithSettingsPatch(patch SettingsPatch) Option {
	return func(cfg *managerConfig) {
		cfg.settings = cfg.settings.Apply(patch)
	}
}

// WithLogger attaches a diagnostics logger. A nil logger disables logging.
func WithLogger(logger Logger) Option {
	return func(cfg *managerConfig) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithGuardEvaluator selects the rule engine for close guards. The expr
// engine is used when none is configured.
func WithGuardEvaluator(evaluator rules.Evaluator) Option {
	return func(cfg *managerConfig) {
		cfg.evaluator = evaluator
	}
}

// WithActivityHooks attaches activity hooks. Nil entries are dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	compact := hooks.Compact()
	return func(cfg *managerConfig) {
		cfg.activityHooks = compact
	}
}

// WithActivityConfig overrides activity emission defaults.
func WithActivityConfig(config activity.Config) Option {
	return func(cfg *managerConfig) {
		cfg.activityConfig = config
	}
}

// WithBaseContext sets the context handed to activity hooks by operations
// that do not take one.
func WithBaseContext(ctx context.Context) Option {
	return func(cfg *managerConfig) {
		if ctx != nil {
			cfg.baseContext = ctx
		}
	}
}
