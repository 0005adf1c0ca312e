package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PARTY_CONFIG_FILE", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, 12, cfg.Party.BcryptCost)
	assert.Equal(t, "US", cfg.Party.DefaultPhoneRegion)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "party.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  request_timeout: 10s
redis:
  url: redis://localhost:6379/0
  cache_ttl: 1m
kafka:
  brokers: [localhost:9092]
party:
  bcrypt_cost: 10
`), 0o600))

	t.Setenv("PARTY_CONFIG_FILE", path)
	t.Setenv("PARTY_ADDR", ":9100")
	t.Setenv("FRONTEND_URL", "https://app.example.com")
	t.Setenv("PARTY_DEFAULT_PHONE_REGION", "gb")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "party.audit", cfg.Kafka.AuditTopic)
	assert.Equal(t, 10, cfg.Party.BcryptCost)
	assert.Equal(t, "GB", cfg.Party.DefaultPhoneRegion)
	assert.Contains(t, cfg.Server.CORSAllowedOrigins, "https://app.example.com")
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PARTY_CONFIG_FILE", "")
	t.Setenv("PARTY_BCRYPT_COST", "not-a-number")
	_, err := Load()
	assert.ErrorContains(t, err, "PARTY_BCRYPT_COST")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown environment":      func(c *Config) { c.Server.Environment = "staging" },
		"bcrypt cost out of range": func(c *Config) { c.Party.BcryptCost = 40 },
		"production without db":    func(c *Config) { c.Server.Environment = EnvProduction },
		"idle above open":          func(c *Config) { c.Database.MaxIdleConns = 100 },
		"region not two letters":   func(c *Config) { c.Party.DefaultPhoneRegion = "USA" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}
