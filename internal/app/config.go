package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/christianrafael21/hoopscout/internal/data/db"
	"github.com/christianrafael21/hoopscout/internal/domain/scoring"
	"github.com/christianrafael21/hoopscout/internal/observability"
)

const (
	envPrefix     = "HOOPSCOUT_"
	envConfigPath = "HOOPSCOUT_CONFIG"
)

type JWTConfig struct {
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl"`
}

type RateLimitConfig struct {
	RPS   float64 `koanf:"rps"`
	Burst int     `koanf:"burst"`
}

type MetricsConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Namespace       string        `koanf:"namespace"`
	DBStatsInterval time.Duration `koanf:"db_stats_interval"`
	Buckets         []float64     `koanf:"buckets"`
}

type CORSConfig struct {
	Origins []string `koanf:"origins"`
}

type Config struct {
	Addr    string `koanf:"addr"`
	LogMode string `koanf:"log_mode"`

	DB        db.Config                `koanf:"db"`
	JWT       JWTConfig                `koanf:"jwt"`
	RateLimit RateLimitConfig          `koanf:"rate_limit"`
	Metrics   MetricsConfig            `koanf:"metrics"`
	Otel      observability.OtelConfig `koanf:"otel"`
	CORS      CORSConfig               `koanf:"cors"`
	Bounds    scoring.Bounds           `koanf:"bounds"`
}

// DefaultConfig is the base layer every other source overrides.
func DefaultConfig() Config {
	return Config{
		Addr:    ":8080",
		LogMode: "development",
		DB: db.Config{
			Driver:  db.DriverPostgres,
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "hoopscout",
			SSLMode: "disable",
			MaxOpen: 20,
			MaxIdle: 5,
		},
		JWT:       JWTConfig{TTL: time.Hour},
		RateLimit: RateLimitConfig{RPS: 20, Burst: 40},
		Metrics:   MetricsConfig{Enabled: true, Namespace: "hoopscout", DBStatsInterval: 15 * time.Second},
		Otel:      observability.OtelConfig{ServiceName: "hoopscout", SampleRatio: 1},
		Bounds:    scoring.DefaultBounds(),
	}
}

// envKey maps HOOPSCOUT_RATE_LIMIT__RPS to rate_limit.rps.
func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// LoadConfig layers defaults, an optional YAML file named by HOOPSCOUT_CONFIG and
// HOOPSCOUT_* environment variables, lowest precedence first. A .env file in the
// working directory is read into the environment before anything else.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	k := koanf.New(".")
	if path := strings.TrimSpace(os.Getenv(envConfigPath)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.CORS.Origins = splitList(cfg.CORS.Origins)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitList flattens comma separated entries, as env vars deliver lists as one string.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("jwt.secret must not be empty")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("jwt.ttl must be positive")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return errors.New("rate_limit.burst must be positive when rate_limit.rps is set")
	}
	if err := c.Bounds.Validate(); err != nil {
		return fmt.Errorf("bounds: %w", err)
	}
	return nil
}
