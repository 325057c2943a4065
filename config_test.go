package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/cobaltlabs/go-auth"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads values from the environment", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "env-secret")
		t.Setenv("JWT_TTL", "30m")
		t.Setenv("JWT_ISSUER", "issuer.example.com")
		t.Setenv("JWT_AUDIENCE", "web,mobile")

		cfg, err := auth.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "env-secret", cfg.GetSigningKey())
		assert.Equal(t, 30*time.Minute, cfg.GetTokenTTL())
		assert.Equal(t, "issuer.example.com", cfg.GetIssuer())
		assert.Equal(t, []string{"web", "mobile"}, cfg.GetAudience())
	})

	t.Run("token TTL defaults to one hour", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "env-secret")
		t.Setenv("JWT_TTL", "")

		cfg, err := auth.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, time.Hour, cfg.GetTokenTTL())
	})

	t.Run("missing signing secret fails loudly", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := auth.LoadConfig()
		assert.Error(t, err)
	})
}

func TestEnvConfig_Validate(t *testing.T) {
	t.Run("rejects whitespace only secrets", func(t *testing.T) {
		cfg := &auth.EnvConfig{SigningKey: "   ", TokenTTL: time.Hour}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects negative TTL", func(t *testing.T) {
		cfg := &auth.EnvConfig{SigningKey: "secret", TokenTTL: -time.Minute}
		assert.Error(t, cfg.Validate())
	})

	t.Run("accepts a complete config", func(t *testing.T) {
		cfg := &auth.EnvConfig{SigningKey: "secret", TokenTTL: time.Hour}
		assert.NoError(t, cfg.Validate())
	})
}
