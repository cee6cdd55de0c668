package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"Aeroperf/internal/calc/aero"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_KEY", "")
	t.Setenv("AEROPERF_TOKEN_KEY", "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ":8443", cfg.Addr)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Equal(t, 8, cfg.SettlePasses)
	assert.Equal(t, aero.DefaultConstants(), cfg.Constants)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoadFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	yaml := "addr: \":9000\"\nrate_burst: 3\nconstants:\n  g: 9.81\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aeroperf.yaml"), []byte(yaml), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AEROPERF_API_KEY_HASH=hash-from-dotenv\n"), 0o600))
	t.Setenv("AEROPERF_RATE_LIMIT", "2.5")
	t.Setenv("AEROPERF_CONSTANTS_RHO0", "1.2")
	t.Setenv("AEROPERF_TOKEN_KEY", "")
	t.Setenv("TOKEN_KEY", "secret")
	t.Cleanup(func() { os.Unsetenv("AEROPERF_API_KEY_HASH") })

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 3, cfg.RateBurst)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, 9.81, cfg.Constants.G)
	assert.Equal(t, 1.2, cfg.Constants.Rho0)
	assert.Equal(t, aero.DefaultConstants().T0, cfg.Constants.T0)
	assert.Equal(t, "secret", cfg.TokenKey)
	assert.Equal(t, "hash-from-dotenv", cfg.APIKeyHash)
	assert.True(t, cfg.AuthEnabled())
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Setenv("TOKEN_KEY", "")
	t.Setenv("AEROPERF_TOKEN_KEY", "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aeroperf.yaml"), []byte("constants:\n  lapse: 0\n"), 0o600))

	_, err := Load(dir)
	assert.True(t, errors.Is(err, aero.ErrInvalidConstants))
}

func TestValidate(t *testing.T) {
	t.Parallel()
	good := Config{Addr: ":1", RateLimit: 1, RateBurst: 1, SettlePasses: 1, Constants: aero.DefaultConstants()}
	require.NoError(t, good.Validate())

	cases := map[string]func(c *Config){
		"no addr":           func(c *Config) { c.Addr = "" },
		"no rate":           func(c *Config) { c.RateLimit = 0 },
		"no burst":          func(c *Config) { c.RateBurst = 0 },
		"no passes":         func(c *Config) { c.SettlePasses = 0 },
		"half tls":          func(c *Config) { c.TLSCert = "server.crt" },
		"token without key": func(c *Config) { c.TokenKey = "k" },
	}
	for name, mutate := range cases {
		c := good
		mutate(&c)
		assert.Error(t, c.Validate(), name)
	}
}
