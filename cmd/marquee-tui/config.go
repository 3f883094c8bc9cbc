package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/marquee/internal/autoplay"
	"github.com/tinytelemetry/marquee/internal/model"
	"github.com/tinytelemetry/marquee/internal/socketrpc"
)

// cliConfig holds only TUI-relevant configuration. It reads the same file and
// environment as the service so one autoplay setup drives both.
type cliConfig struct {
	Autoplay       autoplay.Config `mapstructure:",squash"`
	LoopTrack      bool            `mapstructure:"loop"`
	UpdateInterval time.Duration   `mapstructure:"update-interval"`
	SocketPath     string          `mapstructure:"socket-path"`
	Debug          bool            `mapstructure:"debug"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("MARQUEE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	d := autoplay.DefaultConfig()
	v.SetDefault("autoplay", d.Enabled)
	v.SetDefault("autoplay-delay-ms", d.DelayMs)
	v.SetDefault("pause-on-hover", d.PauseOnHover)
	v.SetDefault("pause-on-focus", d.PauseOnFocus)
	v.SetDefault("stop-on-interaction", d.StopOnInteraction)
	v.SetDefault("loop", false)
	v.SetDefault("update-interval", model.DefaultUpdateInterval)
	v.SetDefault("socket-path", socketrpc.DefaultSocketPath())
	v.SetDefault("debug", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "marquee", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if cfg.UpdateInterval <= 0 {
		return cfg, fmt.Errorf("invalid update-interval: %s", cfg.UpdateInterval)
	}

	return cfg, nil
}
