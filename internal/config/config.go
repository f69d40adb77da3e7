package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig
	Browser       BrowserConfig
	Harvest       HarvestConfig
	OpenAI        OpenAIConfig
	SelectorCache SelectorCacheConfig
	Logging       LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type BrowserConfig struct {
	Headless       bool
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string
	Locale         string
}

type HarvestConfig struct {
	// MaxPages caps pages visited per run.
	MaxPages int
	// DefaultMaxReviews applies when a request does not bound the run.
	DefaultMaxReviews int
	// LoadMoreMaxClicks caps clicks per "load more" control.
	LoadMoreMaxClicks int
	// PageDelayMin/Max pace pagination advances.
	PageDelayMin time.Duration
	PageDelayMax time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type SelectorCacheConfig struct {
	// Addr enables the per-domain selector cache when set.
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Minute),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getStringSliceOrDefault("SERVER_ALLOWED_ORIGINS", []string{"*"}),
		},
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:        getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			UserAgent:      getEnvOrDefault("BROWSER_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "en-US"),
		},
		Harvest: HarvestConfig{
			MaxPages:          getIntOrDefault("HARVEST_MAX_PAGES", 50),
			DefaultMaxReviews: getIntOrDefault("HARVEST_DEFAULT_MAX_REVIEWS", 10000),
			LoadMoreMaxClicks: getIntOrDefault("SCRAPER_LOAD_MORE_MAX_CLICKS", 10),
			PageDelayMin:      getDurationOrDefault("HARVEST_PAGE_DELAY_MIN", 1*time.Second),
			PageDelayMax:      getDurationOrDefault("HARVEST_PAGE_DELAY_MAX", 3*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
		},
		SelectorCache: SelectorCacheConfig{
			Addr:     os.Getenv("SELECTOR_CACHE_ADDR"),
			Password: os.Getenv("SELECTOR_CACHE_PASSWORD"),
			DB:       getIntOrDefault("SELECTOR_CACHE_DB", 0),
			TTL:      getDurationOrDefault("SELECTOR_CACHE_TTL", 24*time.Hour),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Harvest.MaxPages < 1 {
		return fmt.Errorf("HARVEST_MAX_PAGES must be at least 1")
	}

	if c.Harvest.LoadMoreMaxClicks < 1 {
		return fmt.Errorf("SCRAPER_LOAD_MORE_MAX_CLICKS must be at least 1")
	}

	if c.Harvest.PageDelayMin > c.Harvest.PageDelayMax {
		return fmt.Errorf("HARVEST_PAGE_DELAY_MIN cannot be greater than HARVEST_PAGE_DELAY_MAX")
	}

	if c.SelectorCache.Addr != "" && c.SelectorCache.TTL <= 0 {
		return fmt.Errorf("SELECTOR_CACHE_TTL must be positive when the cache is enabled")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
