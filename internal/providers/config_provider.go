package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"rockbot/internal/structures"
	"strings"
	"time"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("persistence.driver", "file")
	v.SetDefault("redis.key", "rockbot:stats")
	v.SetDefault("catalog.format", "csv")
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("catalog.useFallback", true)
	v.SetDefault("images.timeout", 10*time.Second)
	v.SetDefault("images.userAgent", "RockAndRollDiscordBot/1.3")
	v.SetDefault("images.cacheTTL", time.Hour)
	v.SetDefault("bot.prefixes", []string{"r.", "R."})

	v.BindEnv("logger.level", "ROCKBOT_LOG_LEVEL")
	v.BindEnv("bot.token", "ROCKBOT_DISCORD_TOKEN")
	v.BindEnv("catalog.feedUrl", "ROCKBOT_FEED_URL")
	v.BindEnv("persistence.filePath", "ROCKBOT_STATS_FILE")
	v.BindEnv("redis.addr", "ROCKBOT_REDIS_ADDR")
	v.BindEnv("cache.size", "ROCKBOT_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "RockAndRoll"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
