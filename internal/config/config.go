package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// storage
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	RunMigrations  bool   `toml:"run_migrations"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// http
	AllowedOrigins              []string `toml:"allowed_origins"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	AIRateLimitAllowedPerMin    int      `toml:"ai_rate_limit_allowed_per_min"`
	// ai
	AIProvider          string  `toml:"ai_provider"`
	GeminiModel         string  `toml:"gemini_model"`
	GeminiProModel      string  `toml:"gemini_pro_model"`
	UseProModel         bool    `toml:"use_pro_model"`
	LocalAIEndpoint     string  `toml:"local_ai_endpoint"`
	LocalAIModel        string  `toml:"local_ai_model"`
	AIRequestsPerSecond float64 `toml:"ai_requests_per_second"`
	AIRequestTimeout    string  `toml:"ai_request_timeout"`
	// wearables
	WearableCacheTTLSeconds int `toml:"wearable_cache_ttl_seconds"`
	WearableCacheSizeMB     int `toml:"wearable_cache_size_mb"`
	// scheduling
	ResetSweepSchedule string `toml:"reset_sweep_schedule"`
}

// AIRequestTimeoutDuration parses AIRequestTimeout, falling back to two minutes.
func (c *Config) AIRequestTimeoutDuration() time.Duration {
	if c.AIRequestTimeout == "" {
		return 2 * time.Minute
	}
	d, err := time.ParseDuration(c.AIRequestTimeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.AIRateLimitAllowedPerMin == 0 {
		c.AIRateLimitAllowedPerMin = 10
	}
	if c.AIProvider == "" {
		c.AIProvider = "gemini"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-3-flash-preview"
	}
	if c.GeminiProModel == "" {
		c.GeminiProModel = "gemini-3-pro-preview"
	}
	if c.LocalAIEndpoint == "" {
		c.LocalAIEndpoint = "http://localhost:11434/v1"
	}
	if c.LocalAIModel == "" {
		c.LocalAIModel = "local-model"
	}
	if c.AIRequestsPerSecond == 0 {
		c.AIRequestsPerSecond = 2
	}
	if c.WearableCacheTTLSeconds == 0 {
		c.WearableCacheTTLSeconds = 300
	}
	if c.WearableCacheSizeMB == 0 {
		c.WearableCacheSizeMB = 10
	}
	if c.ResetSweepSchedule == "" {
		c.ResetSweepSchedule = "@every 15m"
	}
}

type Toml struct {
	Development *Config
	Production  *Config
	DockerDev   *Config `toml:"dockerdev"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	case "ddev", "dockerdev":
		cfg = t.DockerDev
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("env [%s] not configured", env)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Load reads the TOML config file and returns the section for the given env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return t.Get(env)
}
