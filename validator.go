package jwt

import (
	"time"

	"github.com/tokensmith/jwt/internal/signing"
)

// Validator runs the validation stages for one parsed token. Each stage
// method returns a kind-specific error so callers can branch on expired
// versus not-yet-valid versus signature failures; Validate runs all of
// them in order. A Validator holds no mutable state and may be discarded
// after use.
type Validator struct {
	parsed *Parsed
	secret string
	now    func() time.Time
}

// NewValidator returns a validator for an already parsed token.
func NewValidator(parsed *Parsed, secret string) *Validator {
	return &Validator{parsed: parsed, secret: secret, now: timeNow}
}

// CheckExpiration fails with ErrTokenExpired when the exp claim is present,
// non-zero, and the current time is at or past it. Tokens without an exp
// claim never expire. An exp claim that is present but not representable as
// epoch seconds fails closed.
func (v *Validator) CheckExpiration() error {
	raw, present := v.parsed.Payload().Get(ClaimExpiration)
	if !present {
		return nil
	}
	exp, ok := claimInt64(raw)
	if !ok {
		return ErrTokenExpired
	}
	if exp == 0 {
		return nil
	}
	if !v.now().Before(time.Unix(exp, 0)) {
		return ErrTokenExpired
	}
	return nil
}

// CheckNotBefore fails with ErrTokenNotYetValid when the nbf claim is
// non-zero and still in the future. Like CheckExpiration, an
// unrepresentable nbf value fails closed.
func (v *Validator) CheckNotBefore() error {
	raw, present := v.parsed.Payload().Get(ClaimNotBefore)
	if !present {
		return nil
	}
	nbf, ok := claimInt64(raw)
	if !ok {
		return ErrTokenNotYetValid
	}
	if nbf == 0 {
		return nil
	}
	if v.now().Before(time.Unix(nbf, 0)) {
		return ErrTokenNotYetValid
	}
	return nil
}

// CheckSignature re-signs the token's signing string with the validator's
// secret and compares the result to the carried signature in constant
// time. A mismatch fails with ErrSignatureMismatch.
func (v *Validator) CheckSignature() error {
	if err := signing.Verify(v.parsed.SigningString(), v.parsed.Signature(), []byte(v.secret)); err != nil {
		return ErrSignatureMismatch
	}
	return nil
}

// Validate runs expiration, not-before, and signature checks in order and
// returns the first failure.
func (v *Validator) Validate() error {
	if err := v.CheckExpiration(); err != nil {
		return err
	}
	if err := v.CheckNotBefore(); err != nil {
		return err
	}
	return v.CheckSignature()
}

// Validate parses tokenString and runs full validation against secret,
// collapsing every failure kind to false. No error escapes this call.
func Validate(tokenString, secret string) bool {
	parsed, err := Parse(tokenString)
	if err != nil {
		return false
	}
	return NewValidator(parsed, secret).Validate() == nil
}
