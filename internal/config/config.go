// apps/tracker/internal/config/config.go
//
// Runtime configuration.
//
// Precedence (lowest to highest):
//   1. Built-in defaults.
//   2. YAML file named by CONFIG_FILE (optional).
//   3. Environment variables, after loading .env via godotenv.
//
// Environment variables:
//   PORT, DB_PATH, TIMEZONE, LOG_LEVEL, LOG_FORMAT, PUZZLE_SOURCE_URL,
//   FETCH_TIMEOUT, FETCH_BACKOFF, ANNOUNCE_CHANNEL, JWT_SECRET,
//   JWT_EXPIRES_DAYS, ADMIN_PASSWORD_HASH, CLIENT_ORIGIN

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the tracker.
type Config struct {
	Port     string `yaml:"port"`
	DBPath   string `yaml:"db_path"`
	Timezone string `yaml:"timezone"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // json | console

	PuzzleSourceURL string        `yaml:"puzzle_source_url"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	FetchBackoff    time.Duration `yaml:"fetch_backoff"`

	AnnounceChannel string `yaml:"announce_channel"`

	JWTSecret         string `yaml:"jwt_secret"`
	JWTExpiresDays    int    `yaml:"jwt_expires_days"`
	AdminPasswordHash string `yaml:"admin_password_hash"`
	ClientOrigin      string `yaml:"client_origin"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:            "5175",
		DBPath:          "./data/tracker.db",
		Timezone:        "America/New_York",
		LogLevel:        "info",
		LogFormat:       "json",
		PuzzleSourceURL: "https://www.nytimes.com/svc/wordle/v2/%s.json",
		FetchTimeout:    10 * time.Second,
		FetchBackoff:    2 * time.Second,
		JWTSecret:       "dev_secret_change_me",
		JWTExpiresDays:  14,
		ClientOrigin:    "http://localhost:5173",
	}
}

// Load reads .env (if present), the optional YAML file and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.Timezone = getEnv("TIMEZONE", c.Timezone)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.PuzzleSourceURL = getEnv("PUZZLE_SOURCE_URL", c.PuzzleSourceURL)
	c.AnnounceChannel = getEnv("ANNOUNCE_CHANNEL", c.AnnounceChannel)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", c.AdminPasswordHash)
	c.ClientOrigin = getEnv("CLIENT_ORIGIN", c.ClientOrigin)

	var err error
	if c.FetchTimeout, err = envDuration("FETCH_TIMEOUT", c.FetchTimeout); err != nil {
		return err
	}
	if c.FetchBackoff, err = envDuration("FETCH_BACKOFF", c.FetchBackoff); err != nil {
		return err
	}
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRES_DAYS: %w", err)
		}
		c.JWTExpiresDays = n
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}
