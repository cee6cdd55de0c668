// Package config loads server and calculation settings from a .env file,
// an optional aeroperf.yaml, and AEROPERF_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"Aeroperf/internal/calc/aero"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime configuration.
type Config struct {
	Addr    string `mapstructure:"addr"`
	TLSCert string `mapstructure:"tls_cert"`
	TLSKey  string `mapstructure:"tls_key"`

	// TokenKey signs API session tokens. Empty disables authentication.
	TokenKey string `mapstructure:"token_key"`
	// APIKeyHash is the bcrypt hash of the key accepted by /api/login.
	APIKeyHash string `mapstructure:"api_key_hash"`

	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`

	// SettlePasses caps the aggregate passes of a settle request.
	SettlePasses int `mapstructure:"settle_passes"`

	Constants aero.Constants `mapstructure:"constants"`
}

// Load reads dir/.env into the environment (existing variables win), then
// dir/aeroperf.yaml if present, then AEROPERF_* variables. An empty dir
// means the working directory.
func Load(dir string) (Config, error) {
	if dir == "" {
		dir = "."
	}
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("aeroperf")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading aeroperf.yaml: %w", err)
		}
	}

	v.SetEnvPrefix("AEROPERF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// TOKEN_KEY is honored for deployments that already export it.
	if err := v.BindEnv("token_key", "AEROPERF_TOKEN_KEY", "TOKEN_KEY"); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	c := aero.DefaultConstants()
	v.SetDefault("addr", ":8443")
	v.SetDefault("tls_cert", "")
	v.SetDefault("tls_key", "")
	v.SetDefault("token_key", "")
	v.SetDefault("api_key_hash", "")
	v.SetDefault("rate_limit", 5.0)
	v.SetDefault("rate_burst", 10)
	v.SetDefault("settle_passes", 8)
	v.SetDefault("constants.g", c.G)
	v.SetDefault("constants.rho0", c.Rho0)
	v.SetDefault("constants.t0", c.T0)
	v.SetDefault("constants.p0", c.P0)
	v.SetDefault("constants.lapse", c.Lapse)
	v.SetDefault("constants.r", c.R)
	v.SetDefault("constants.gamma", c.Gamma)
	v.SetDefault("constants.sutherland_c", c.SutherlandC)
	v.SetDefault("constants.sutherland_s", c.SutherlandS)
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is required")
	}
	if !(c.RateLimit > 0) || c.RateBurst < 1 {
		return fmt.Errorf("config: rate_limit must be positive and rate_burst at least 1, got %g/%d", c.RateLimit, c.RateBurst)
	}
	if c.SettlePasses < 1 {
		return fmt.Errorf("config: settle_passes must be at least 1, got %d", c.SettlePasses)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("config: tls_cert and tls_key must be set together")
	}
	if c.TokenKey != "" && c.APIKeyHash == "" {
		return errors.New("config: api_key_hash is required when token_key is set")
	}
	return c.Constants.Validate()
}

// AuthEnabled reports whether API requests must carry a session token.
func (c Config) AuthEnabled() bool { return c.TokenKey != "" }
