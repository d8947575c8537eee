package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the merged configuration: defaults, then the global file, then
// the project file, then an explicit file, then KANBAN_* env vars.
type Config struct {
	Theme   string        `mapstructure:"theme"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	IDs     IDConfig      `mapstructure:"ids"`
}

type StorageConfig struct {
	Backend string      `mapstructure:"backend"` // "file" | "redis" | "memory"
	Dir     string      `mapstructure:"dir"`     // file backend; empty = working directory
	Key     string      `mapstructure:"key"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty disables logging
}

type IDConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

const envPrefix = "KANBAN"

// Load merges every config source. extra is an optional explicit file that
// must exist when given.
func Load(extra string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, p := range []string{GlobalConfigPath(), ProjectConfigPath()} {
		if p == "" {
			continue
		}
		if err := mergeFile(v, p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if extra != "" {
		if err := mergeFile(v, extra); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := v.MergeConfig(f); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("config: storage.backend %q (want file, redis or memory)", c.Storage.Backend)
	}
	if c.IDs.Min < 1 || c.IDs.Max < c.IDs.Min {
		return fmt.Errorf("config: ids range [%d, %d] is invalid", c.IDs.Min, c.IDs.Max)
	}
	return nil
}

// GlobalConfigPath returns ~/.kanban/config.yaml, or "" without a home dir.
func GlobalConfigPath() string {
	dir := GlobalDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// ProjectConfigPath returns ./.kanban/config.yaml.
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".kanban", "config.yaml")
}

// GlobalDir is ~/.kanban.
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kanban")
}
