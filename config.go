package jwt

import (
	"fmt"
	"time"

	"github.com/tokensmith/jwt/internal/secret"
	"go.uber.org/zap"
)

// Config configures a Processor.
type Config struct {
	// Secret is the shared HMAC key (minimum 12 bytes).
	Secret string `yaml:"secret" json:"secret"`

	// TokenTTL is the lifetime written into the exp claim of issued
	// tokens.
	TokenTTL time.Duration `yaml:"token_ttl" json:"token_ttl"`

	// Issuer is written into the iss claim of issued tokens when the
	// caller has not set one.
	Issuer string `yaml:"issuer" json:"issuer"`

	// Logger receives structured issue/validate events. Defaults to a
	// no-op logger.
	Logger *zap.Logger `yaml:"-" json:"-"`
}

// DefaultConfig returns the defaults used when New is called without an
// explicit configuration.
func DefaultConfig() Config {
	return Config{
		Secret:   "",
		TokenTTL: 15 * time.Minute,
		Issuer:   "token-service",
		Logger:   zap.NewNop(),
	}
}

// Validate checks the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}
	if err := secret.Validate(c.Secret); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token TTL must be positive, got %v", ErrInvalidConfig, c.TokenTTL)
	}
	return nil
}
