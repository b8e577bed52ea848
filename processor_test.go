package jwt

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProcessorCreation(t *testing.T) {
	tests := []struct {
		name      string
		secretKey string
		wantError bool
	}{
		{"valid secret key", testSecret, false},
		{"short secret key", "short", true},
		{"empty secret key", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor, err := New(tt.secretKey)
			if tt.wantError {
				assert.ErrorIs(t, err, ErrInvalidSecret)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, processor)
			defer processor.Close()
		})
	}
}

func TestProcessorIssueAndValidate(t *testing.T) {
	processor, err := New(testSecret, Config{
		TokenTTL: time.Minute,
		Issuer:   "trusted-issuer",
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)
	defer processor.Close()

	payload := NewClaims()
	payload.Set("user_id", "user123")
	payload.Set("role", "admin")

	token, err := processor.Issue(payload)
	require.NoError(t, err)

	parsed, err := processor.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "user123", parsed.Payload().String("user_id"))
	assert.Equal(t, "admin", parsed.Payload().String("role"))
	assert.Equal(t, "trusted-issuer", parsed.Issuer())
	assert.NotZero(t, parsed.IssuedAt())
	assert.Greater(t, parsed.ExpiresAt(), time.Now().Unix())

	// The generated token ID is a uuid.
	_, err = uuid.Parse(parsed.ID())
	assert.NoError(t, err)
}

func TestProcessorDoesNotOverrideCallerClaims(t *testing.T) {
	processor, err := New(testSecret)
	require.NoError(t, err)
	defer processor.Close()

	payload := NewClaims()
	payload.Set(ClaimIssuer, "custom-issuer")
	payload.Set(ClaimID, "custom-id")

	token, err := processor.Issue(payload)
	require.NoError(t, err)

	parsed, err := processor.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "custom-issuer", parsed.Issuer())
	assert.Equal(t, "custom-id", parsed.ID())

	// The caller's claims mapping stays untouched.
	assert.False(t, payload.Has(ClaimExpiration))
	assert.False(t, payload.Has(ClaimIssuedAt))
}

func TestProcessorIssueNilPayload(t *testing.T) {
	processor, err := New(testSecret)
	require.NoError(t, err)
	defer processor.Close()

	token, err := processor.Issue(nil)
	require.NoError(t, err)

	parsed, err := processor.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "token-service", parsed.Issuer())
	assert.NotEmpty(t, parsed.ID())
}

func TestProcessorValidateFailureKinds(t *testing.T) {
	processor, err := New(testSecret)
	require.NoError(t, err)
	defer processor.Close()

	_, err = processor.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrMalformedToken)

	expired, err := NewBuilder().
		AddPayload(ClaimExpiration, time.Now().Unix()-10).
		SetSecret(testSecret).
		Build()
	require.NoError(t, err)
	_, err = processor.Validate(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	other, err := New("a-different-secret-key")
	require.NoError(t, err)
	defer other.Close()

	foreign, err := other.Issue(nil)
	require.NoError(t, err)
	_, err = processor.Validate(foreign)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestProcessorConfigValidation(t *testing.T) {
	_, err := New(testSecret, Config{TokenTTL: -time.Minute})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := DefaultConfig()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidSecret, "default config has no secret")

	cfg.Secret = testSecret
	assert.NoError(t, cfg.Validate())

	cfg.TokenTTL = -time.Minute
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), ErrInvalidConfig)
}

func TestProcessorClose(t *testing.T) {
	processor, err := New(testSecret)
	require.NoError(t, err)

	token, err := processor.Issue(nil)
	require.NoError(t, err)

	require.NoError(t, processor.Close())
	assert.True(t, processor.IsClosed())
	assert.ErrorIs(t, processor.Close(), ErrProcessorClosed)

	_, err = processor.Issue(nil)
	assert.ErrorIs(t, err, ErrProcessorClosed)
	_, err = processor.Validate(token)
	assert.ErrorIs(t, err, ErrProcessorClosed)
}

func TestProcessorConcurrentUse(t *testing.T) {
	processor, err := New(testSecret)
	require.NoError(t, err)
	defer processor.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload := NewClaims()
			payload.Set("user_id", "user123")

			token, err := processor.Issue(payload)
			assert.NoError(t, err)

			_, err = processor.Validate(token)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
