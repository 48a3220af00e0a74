package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Driver   string `yaml:"driver" validate:"required|in:file,redis"`
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
	Compress bool   `yaml:"compress"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CatalogConfig struct {
	FeedURL        string        `yaml:"feedUrl"`
	Format         string        `yaml:"format" validate:"in:csv,json"`
	Timeout        time.Duration `yaml:"timeout"`
	ReloadInterval time.Duration `yaml:"reloadInterval"`
	UseFallback    bool          `yaml:"useFallback"`
}

type ImagesConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`
	CacheTTL  time.Duration `yaml:"cacheTTL"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size" validate:"int|min:0|max:4096"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type BotConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Token    string   `yaml:"token"`
	Prefixes []string `yaml:"prefixes"`
	Owners   []string `yaml:"owners"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Redis       RedisConfig   `yaml:"redis"`
	Logger      LoggerConfig  `yaml:"logger"`
	Catalog     CatalogConfig `yaml:"catalog"`
	Images      ImagesConfig  `yaml:"images"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Bot         BotConfig     `yaml:"bot"`
}

// IsOwner reports whether userID is listed in bot.owners.
func (c *Config) IsOwner(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range c.Bot.Owners {
		if id == userID {
			return true
		}
	}
	return false
}
