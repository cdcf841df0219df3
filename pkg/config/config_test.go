package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lovelyapp/backend/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("APP_CONFIG_NAME", "does-not-exist")

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, 3333, c.Server.Port)
	require.Equal(t, DBDriverPostgres, c.Database.Driver)
	require.Equal(t, 7*24*time.Hour, c.Auth.TokenTTL)
	require.Equal(t, "http://localhost:3001", c.URLs.Dashboard)
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, c.CORS.AllowedOrigins)
	require.Len(t, c.Plans, 3)

	p, ok := c.GetPlanByCode("PPU38CPQ73K")
	require.True(t, ok)
	require.Equal(t, types.PlanTypeMedio, p.Type)

	_, ok = c.GetPlanByCode("UNKNOWN")
	require.False(t, ok)
}

func TestNew_LegacyEnvNames(t *testing.T) {
	t.Setenv("APP_CONFIG_NAME", "does-not-exist")
	t.Setenv("PORT", "4444")
	t.Setenv("JWT_SECRET", "legacy-secret-long-enough")
	t.Setenv("FRONTEND_URL", "https://lovely.example/")
	t.Setenv("LOVELY_APP_URL", "https://app.lovely.example")

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, 4444, c.Server.Port)
	require.Equal(t, "legacy-secret-long-enough", c.Auth.JWTSecret)
	require.Equal(t, "https://lovely.example", c.URLs.Sales)
	require.Equal(t, "https://app.lovely.example", c.URLs.Dashboard)
}

func TestNew_AppURLWinsOverLovelyAppURL(t *testing.T) {
	t.Setenv("APP_CONFIG_NAME", "does-not-exist")
	t.Setenv("APP_URL", "https://app.lovely.example")
	t.Setenv("LOVELY_APP_URL", "https://old.lovely.example")

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, "https://app.lovely.example", c.URLs.Dashboard)
}

func TestNew_FromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lovely.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
env: dev
database:
  driver: memory
auth:
  token_ttl: 1h
plans:
  - code: TEST1
    type: premium
    name: Teste
    daring_level: 9
`), 0o600))
	t.Setenv("APP_CONFIG_FILE", file)

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, DBDriverMemory, c.Database.Driver)
	require.Equal(t, time.Hour, c.Auth.TokenTTL)
	require.Len(t, c.Plans, 1)

	p, ok := c.GetPlanByCode("TEST1")
	require.True(t, ok)
	require.Equal(t, 9, p.InitialDaringLevel())
}

func TestValidate_RejectsDefaultSecretInProd(t *testing.T) {
	c := &Config{
		Env:   EnvProd,
		Auth:  AuthConfig{JWTSecret: DefaultJWTSecret},
		URLs:  URLConfig{Dashboard: "https://app", Sales: "https://site"},
		Plans: types.DefaultPlans(),
	}
	require.Error(t, c.Validate())

	c.Auth.JWTSecret = "a-much-better-production-secret"
	require.NoError(t, c.Validate())
}

func TestValidate_RejectsUnknownPlanType(t *testing.T) {
	c := &Config{
		Auth:  AuthConfig{JWTSecret: DefaultJWTSecret},
		URLs:  URLConfig{Dashboard: "https://app", Sales: "https://site"},
		Plans: []*types.Plan{{Code: "X", Type: "gold"}},
	}
	require.ErrorContains(t, c.Validate(), "invalid plan")
}
