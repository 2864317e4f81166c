package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/metalqc-backend/internal/platform/envutil"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

// Config is read once at startup and passed around by value; nothing mutates
// it afterwards.
type Config struct {
	ListenAddr            string        `yaml:"listen_addr"`
	GinMode               string        `yaml:"gin_mode"`
	LogMode               string        `yaml:"log_mode"`
	DatabaseDSN           string        `yaml:"database_dsn"`
	JWTSecretKey          string        `yaml:"jwt_secret_key"`
	AccessTokenTTL        time.Duration `yaml:"-"`
	AccessTokenTTLMinutes int           `yaml:"access_token_ttl_minutes"`
	CORSOrigins           []string      `yaml:"cors_origins"`
}

// LoadConfig reads an optional YAML file (CONFIG_FILE) and then applies
// environment overrides on top.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		ListenAddr:            ":8000",
		GinMode:               "release",
		LogMode:               "development",
		AccessTokenTTLMinutes: 30,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.ListenAddr = envutil.Str("LISTEN_ADDR", cfg.ListenAddr)
	cfg.GinMode = envutil.Str("GIN_MODE", cfg.GinMode)
	cfg.LogMode = envutil.Str("LOG_MODE", cfg.LogMode)
	cfg.DatabaseDSN = envutil.Str("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.JWTSecretKey = envutil.Str("JWT_SECRET_KEY", cfg.JWTSecretKey)
	cfg.AccessTokenTTLMinutes = envutil.Int("ACCESS_TOKEN_TTL_MINUTES", cfg.AccessTokenTTLMinutes)
	cfg.AccessTokenTTL = time.Duration(cfg.AccessTokenTTLMinutes) * time.Minute

	if cfg.DatabaseDSN == "" {
		return Config{}, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.JWTSecretKey == "" {
		return Config{}, fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return cfg, nil
}
