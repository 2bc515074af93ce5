package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Catalog     CatalogConfig   `mapstructure:"catalog"`
	Profiles    ProfilesConfig  `mapstructure:"profiles"`
	Store       StoreConfig     `mapstructure:"store"`
	Recommend   RecommendConfig `mapstructure:"recommend"`
	Shopping    ShoppingConfig  `mapstructure:"shopping"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Request     RequestConfig   `mapstructure:"request"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
	LogDir      string          `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// CatalogConfig 酒譜目錄來源
type CatalogConfig struct {
	Source   string        `mapstructure:"source"` // file | remote
	Path     string        `mapstructure:"path"`
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// ProfilesConfig 使用者偏好檔案
type ProfilesConfig struct {
	Path string `mapstructure:"path"`
}

// StoreConfig 購物清單儲存
type StoreConfig struct {
	Driver        string `mapstructure:"driver"` // memory | redis | sqlite
	Key           string `mapstructure:"key"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	SQLitePath    string `mapstructure:"sqlite_path"`
}

// RecommendConfig 推薦數量設定
type RecommendConfig struct {
	DefaultLimit     int `mapstructure:"default_limit"`
	ForYouLimit      int `mapstructure:"for_you_limit"`
	TrendingLimit    int `mapstructure:"trending_limit"`
	ChallengingLimit int `mapstructure:"challenging_limit"`
	BarLimit         int `mapstructure:"bar_limit"`
}

// ShoppingConfig 購物清單設定
type ShoppingConfig struct {
	PriceSeed int64 `mapstructure:"price_seed"` // 0 表示不固定
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// RequestConfig 請求大小限制
type RequestConfig struct {
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，不存在時略過
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return load(v)
}

// load 套用預設值、環境變數後解析並驗證
func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	v.BindEnv("server.port", "PORT")
	v.BindEnv("catalog.source", "CATALOG_SOURCE")
	v.BindEnv("catalog.path", "CATALOG_PATH")
	v.BindEnv("catalog.url", "CATALOG_URL")
	v.BindEnv("profiles.path", "PROFILES_PATH")
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("store.redis_addr", "REDIS_ADDR")
	v.BindEnv("store.redis_password", "REDIS_PASSWORD")
	v.BindEnv("store.sqlite_path", "SQLITE_PATH")
	v.BindEnv("shopping.price_seed", "PRICE_SEED")
	v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	v.BindEnv("dedup_window", "DEDUP_WINDOW")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("log_dir", "LOG_DIR")

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "mixology-engine")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")

	// 目錄設定
	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "data/recipes.json")
	v.SetDefault("catalog.timeout", "10s")
	v.SetDefault("catalog.cache_ttl", "5m")

	v.SetDefault("profiles.path", "data/profiles.json")

	// 儲存設定
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.key", "mixology:shopping_lists")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.sqlite_path", "data/shopping.db")

	// 推薦設定
	v.SetDefault("recommend.default_limit", 10)
	v.SetDefault("recommend.for_you_limit", 10)
	v.SetDefault("recommend.trending_limit", 10)
	v.SetDefault("recommend.challenging_limit", 5)
	v.SetDefault("recommend.bar_limit", 10)

	v.SetDefault("shopping.price_seed", 0)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("request.max_body_bytes", 1<<20) // 1MB
	v.SetDefault("request.timeout", "30s")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	switch config.Catalog.Source {
	case "file":
		if config.Catalog.Path == "" {
			return fmt.Errorf("catalog path is required for file source")
		}
	case "remote":
		if config.Catalog.URL == "" {
			return fmt.Errorf("catalog url is required for remote source")
		}
		if config.Catalog.Timeout <= 0 {
			return fmt.Errorf("invalid catalog timeout")
		}
	default:
		return fmt.Errorf("unknown catalog source %q", config.Catalog.Source)
	}

	switch config.Store.Driver {
	case "memory":
	case "redis":
		if config.Store.RedisAddr == "" {
			return fmt.Errorf("redis address is required")
		}
	case "sqlite":
		if config.Store.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required")
		}
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	if config.Request.Timeout <= 0 {
		return fmt.Errorf("invalid request timeout")
	}

	// 驗證推薦數量
	r := config.Recommend
	if r.DefaultLimit <= 0 || r.ForYouLimit <= 0 || r.TrendingLimit <= 0 || r.ChallengingLimit <= 0 || r.BarLimit <= 0 {
		return fmt.Errorf("recommendation limits must be positive")
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	return nil
}
