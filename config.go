package auth

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
)

// EnvConfig is the concrete Config loaded from the process environment.
// There is no fallback signing secret: a process without JWT_SECRET must
// refuse to start.
type EnvConfig struct {
	SigningKey string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"JWT_TTL" envDefault:"1h"`
	Issuer     string        `env:"JWT_ISSUER"`
	Audience   []string      `env:"JWT_AUDIENCE" envSeparator:","`

	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseDSN string `env:"DATABASE_URL" envDefault:"file:auth.db?cache=shared"`
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "failed to parse environment configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails loudly on configuration that would weaken token
// signing.
func (c *EnvConfig) Validate() error {
	if strings.TrimSpace(c.SigningKey) == "" {
		return goerrors.New("signing secret is required, set JWT_SECRET", goerrors.CategoryValidation).
			WithTextCode("MISSING_SIGNING_KEY")
	}
	if c.TokenTTL <= 0 {
		return goerrors.New("token TTL must be positive, check JWT_TTL", goerrors.CategoryValidation).
			WithTextCode("INVALID_TOKEN_TTL")
	}
	return nil
}

func (c *EnvConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *EnvConfig) GetTokenTTL() time.Duration {
	return c.TokenTTL
}

func (c *EnvConfig) GetIssuer() string {
	return c.Issuer
}

func (c *EnvConfig) GetAudience() []string {
	return c.Audience
}

var _ Config = (*EnvConfig)(nil)
