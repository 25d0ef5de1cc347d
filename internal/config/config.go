package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Env  string `toml:"env"`
	Port string `toml:"port"`

	JWTSecret string        `toml:"jwt_secret"`
	TokenTTL  time.Duration `toml:"-"`

	RedisURL  string `toml:"redis_url"`
	RedisPass string `toml:"redis_password"`
	RedisDB   int    `toml:"redis_db"`

	StartingBalance float64 `toml:"starting_balance"`
	BetRateLimit    int     `toml:"bet_rate_limit"`
}

func Defaults() Config {
	return Config{
		Env:             "development",
		Port:            "8080",
		JWTSecret:       "dev-secret",
		TokenTTL:        24 * time.Hour,
		StartingBalance: 1000,
		BetRateLimit:    30,
	}
}

// Load builds the config from defaults, then the TOML file named by
// CONFIG_FILE (if set), then environment variables.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	setStr(&cfg.Env, "ENV")
	setStr(&cfg.Port, "PORT")
	setStr(&cfg.JWTSecret, "JWT_SECRET")
	setStr(&cfg.RedisURL, "REDIS_URL")
	setStr(&cfg.RedisPass, "REDIS_PASSWORD")

	if err := setInt(&cfg.RedisDB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&cfg.BetRateLimit, "BET_RATE_LIMIT"); err != nil {
		return err
	}
	if err := setFloat64(&cfg.StartingBalance, "STARTING_BALANCE"); err != nil {
		return err
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		cfg.TokenTTL = d
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if math.IsNaN(c.StartingBalance) || math.IsInf(c.StartingBalance, 0) || c.StartingBalance <= 0 {
		errs = append(errs, fmt.Errorf("starting balance must be positive, got %.2f", c.StartingBalance))
	}
	if c.Env == "production" && (c.JWTSecret == "" || c.JWTSecret == "dev-secret") {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token TTL must be positive"))
	}
	if c.BetRateLimit < 0 {
		errs = append(errs, errors.New("bet rate limit cannot be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) RedisEnabled() bool {
	return c.RedisURL != ""
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setFloat64(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = f
	return nil
}
