package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/marquee/internal/autoplay"
	"github.com/tinytelemetry/marquee/internal/backup"
	"github.com/tinytelemetry/marquee/internal/socketrpc"
)

const (
	defaultBindHost     = "127.0.0.1"
	defaultAPIPort      = 3000
	defaultQueryTimeout = 30 * time.Second
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	Autoplay     autoplay.Config `mapstructure:",squash"`
	Backup       backup.Config   `mapstructure:",squash"`
	LoopTrack    bool            `mapstructure:"loop"`
	Host         string          `mapstructure:"host"`
	APIEnabled   bool            `mapstructure:"api-enabled"`
	APIPort      int             `mapstructure:"api-port"`
	APIAddr      string          `mapstructure:"api-addr"`
	DBPath       string          `mapstructure:"db-path"`
	QueryTimeout time.Duration   `mapstructure:"query-timeout"`
	SocketPath   string          `mapstructure:"socket-path"`
	Debug        bool            `mapstructure:"debug"`
	ConfigPath   string          `mapstructure:"-"` // not from config file
}

func setAutoplayDefaults(v *viper.Viper) {
	d := autoplay.DefaultConfig()
	v.SetDefault("autoplay", d.Enabled)
	v.SetDefault("autoplay-delay-ms", d.DelayMs)
	v.SetDefault("pause-on-hover", d.PauseOnHover)
	v.SetDefault("pause-on-focus", d.PauseOnFocus)
	v.SetDefault("stop-on-interaction", d.StopOnInteraction)
}

func newViper(configPath, home string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("MARQUEE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "marquee", "config.yml"))
	}
	return v
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func loadConfig(configPath string, debug bool) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	defaultDBPath := filepath.Join(home, ".local", "share", "marquee", "marquee.duckdb")

	v := newViper(configPath, home)
	setAutoplayDefaults(v)
	v.SetDefault("loop", false)
	v.SetDefault("host", defaultBindHost)
	v.SetDefault("api-enabled", true)
	v.SetDefault("api-port", defaultAPIPort)
	v.SetDefault("db-path", defaultDBPath)
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("socket-path", socketrpc.DefaultSocketPath())
	v.SetDefault("debug", false)
	v.SetDefault("backup-enabled", false)
	v.SetDefault("backup-interval", 6*time.Hour)
	v.SetDefault("backup-dir", filepath.Join(home, ".local", "share", "marquee", "backups"))
	v.SetDefault("backup-keep", 24)

	if err := readConfig(v); err != nil {
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	if _, err := os.Stat(cfg.ConfigPath); err != nil {
		cfg.ConfigPath = ""
	}
	cfg.Debug = cfg.Debug || debug

	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api-port: %d", cfg.APIPort)
	}

	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.Backup.Dir = expandHome(cfg.Backup.Dir, home)

	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.APIPort))
	}

	return cfg, nil
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
