package jwt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tokensmith/jwt/internal/secret"
)

// ErrProcessorClosed is returned by operations on a closed Processor.
var ErrProcessorClosed = errors.New("processor is closed: cannot perform operations")

// Processor is the configured issue/validate front end over the Builder,
// Parser, and Validator. It holds one shared secret, stamps issued tokens
// with the configured issuer and TTL, and logs outcomes through the
// configured zap logger.
//
// A Processor is safe for concurrent use: every call operates on
// caller-local data, the secret is read-only for the Processor's lifetime.
type Processor struct {
	secretKey []byte
	tokenTTL  time.Duration
	issuer    string
	logger    *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// New creates a Processor for secretKey with optional configuration.
func New(secretKey string, config ...Config) (*Processor, error) {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	} else {
		cfg = DefaultConfig()
	}
	cfg.Secret = secretKey

	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultConfig().Issuer
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &Processor{
		secretKey: []byte(cfg.Secret),
		tokenTTL:  cfg.TokenTTL,
		issuer:    cfg.Issuer,
		logger:    cfg.Logger,
	}, nil
}

// Issue builds a signed token carrying the supplied payload claims.
// Missing iss, iat, and exp claims are filled from the configuration, and
// a uuid jti is generated when the payload does not carry one. The
// supplied claims are not mutated.
func (p *Processor) Issue(payload *Claims) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return "", ErrProcessorClosed
	}

	builder := NewBuilder().SetSecret(string(p.secretKey))
	if payload != nil {
		for _, name := range payload.Names() {
			value, _ := payload.Get(name)
			builder.AddPayload(name, value)
		}
	}

	if payload == nil || !payload.Has(ClaimIssuer) {
		builder.SetIssuer(p.issuer)
	}
	if payload == nil || !payload.Has(ClaimIssuedAt) {
		builder.SetIssuedAt()
	}
	if payload == nil || !payload.Has(ClaimExpiration) {
		builder.SetExpiration(p.tokenTTL)
	}
	if payload == nil || !payload.Has(ClaimID) {
		builder.SetJwtID(uuid.NewString())
	}

	tokenString, err := builder.Build()
	if err != nil {
		p.logger.Error("token issuance failed", zap.Error(err))
		return "", err
	}

	p.logger.Debug("token issued",
		zap.String("issuer", p.issuer),
		zap.Duration("ttl", p.tokenTTL))
	return tokenString, nil
}

// Validate parses tokenString and runs the full validation sequence.
// Failures are returned with their specific kind (ErrMalformedToken,
// ErrTokenExpired, ErrTokenNotYetValid, ErrSignatureMismatch, ...) and
// logged; on success the parsed token is returned.
func (p *Processor) Validate(tokenString string) (*Parsed, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrProcessorClosed
	}

	parsed, err := Parse(tokenString)
	if err != nil {
		p.logger.Warn("token rejected at parse", zap.Error(err))
		return nil, err
	}

	if err := NewValidator(parsed, string(p.secretKey)).Validate(); err != nil {
		p.logger.Warn("token validation failed",
			zap.String("jti", parsed.ID()),
			zap.String("issuer", parsed.Issuer()),
			zap.Error(err))
		return nil, err
	}

	p.logger.Debug("token validated",
		zap.String("jti", parsed.ID()),
		zap.String("subject", parsed.Subject()))
	return parsed, nil
}

// Close shuts the processor down and zeroizes its copy of the secret.
// Subsequent calls return ErrProcessorClosed.
func (p *Processor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrProcessorClosed
	}
	secret.Zero(p.secretKey)
	p.secretKey = nil
	p.closed = true
	return nil
}

// IsClosed reports whether the processor has been closed.
func (p *Processor) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}
