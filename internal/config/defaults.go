package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "classic")
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.dir", "")
	v.SetDefault("storage.key", "tasks")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "kanban")
	v.SetDefault("log.level", "info")
	logFile := ""
	if dir := GlobalDir(); dir != "" {
		logFile = filepath.Join(dir, "kanban.log")
	}
	v.SetDefault("log.file", logFile)
	v.SetDefault("ids.min", 1)
	v.SetDefault("ids.max", 100)
}

// Default returns the configuration used when no file or env var is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}
