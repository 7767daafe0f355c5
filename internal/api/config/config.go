package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("INKWELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("rate_limit.backend", "memory")
	v.SetDefault("rate_limit.max_entries", 100000)
	v.SetDefault("rate_limit.sweep_schedule", "@every 1m")
	v.SetDefault("rate_limit.policies", map[string]any{
		"read_post":      map[string]any{"limit": 1000, "window": 3600},
		"create_post":    map[string]any{"limit": 10, "window": 3600},
		"update_post":    map[string]any{"limit": 50, "window": 3600},
		"create_comment": map[string]any{"limit": 30, "window": 3600},
		"toggle_like":    map[string]any{"limit": 300, "window": 3600},
	})

	v.SetDefault("audit.store", "mysql")
	v.SetDefault("audit.kafka.topic", "inkwell-audit")
	v.SetDefault("audit.kafka.archive.group_id", "inkwell-audit-archiver")

	v.SetDefault("kafka.consumer.session_timeout", 30)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 10)
}
