package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	modals "github.com/goliatone/go-modals"
)

const envPrefix = "MODALCTL"

// cliConfig is the resolved configuration. Settings only carries the keys
// that were actually provided so scenario files can still override them.
type cliConfig struct {
	Settings modals.SettingsPatch
	LogLevel string
	Output   string
	StateDir string
}

// loadConfig resolves configuration from defaults, an optional YAML file,
// MODALCTL_* env vars and flags, in increasing precedence.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet, path string) (cliConfig, error) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("output", "table")
	v.SetDefault("state_dir", ".modalctl")

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("modalctl")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for key, flag := range map[string]string{
		"log_level": "log-level",
		"output":    "output",
		"state_dir": "state-dir",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return cliConfig{}, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return cliConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := cliConfig{
		LogLevel: v.GetString("log_level"),
		Output:   strings.ToLower(v.GetString("output")),
		StateDir: v.GetString("state_dir"),
	}
	switch cfg.Output {
	case "table", "json":
	default:
		return cliConfig{}, fmt.Errorf("unknown output format %q", cfg.Output)
	}

	if v.IsSet("base_z_index") {
		cfg.Settings.BaseZIndex = modals.Int(v.GetInt("base_z_index"))
	}
	if v.IsSet("overlay_z_index") {
		cfg.Settings.OverlayZIndex = modals.Int(v.GetInt("overlay_z_index"))
	}
	if v.IsSet("transition_duration") {
		cfg.Settings.TransitionDuration = modals.Duration(v.GetDuration("transition_duration"))
	}
	if v.IsSet("close_on_overlay_click") {
		cfg.Settings.CloseOnOverlayClick = modals.Bool(v.GetBool("close_on_overlay_click"))
	}
	if v.IsSet("close_on_escape") {
		cfg.Settings.CloseOnEscape = modals.Bool(v.GetBool("close_on_escape"))
	}
	return cfg, nil
}
