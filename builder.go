package jwt

import (
	"time"

	"github.com/tokensmith/jwt/internal/encoding"
	"github.com/tokensmith/jwt/internal/secret"
	"github.com/tokensmith/jwt/internal/signing"
)

// timeNow is swapped in tests that exercise time windows.
var timeNow = time.Now

// Builder accumulates header and payload claims through a fluent interface
// and assembles a signed token on Build. Every setter returns the builder,
// performs no I/O, and defers all validation to Build.
//
// A Builder is not safe for concurrent use; create one per token.
type Builder struct {
	header  *Claims
	payload *Claims
	secret  string
}

// NewBuilder returns a builder whose header is pre-populated with
// typ=JWT and alg=HS256.
func NewBuilder() *Builder {
	header := NewClaims()
	header.Set(HeaderAlgorithm, signing.Alg)
	header.Set(HeaderType, "JWT")

	return &Builder{
		header:  header,
		payload: NewClaims(),
	}
}

// AddHeader inserts or overwrites a header claim.
func (b *Builder) AddHeader(name string, value any) *Builder {
	b.header.Set(name, value)
	return b
}

// AddPayload inserts or overwrites a payload claim. Insertion order is
// preserved in the serialized payload.
func (b *Builder) AddPayload(name string, value any) *Builder {
	b.payload.Set(name, value)
	return b
}

// SetSecret stores the signing key. The key policy is enforced by Build,
// not here.
func (b *Builder) SetSecret(s string) *Builder {
	b.secret = s
	return b
}

// SetExpiration sets the exp claim to the current time plus d, in epoch
// seconds. The time is captured at call time, so repeated Build calls
// stay deterministic until the setter is invoked again.
func (b *Builder) SetExpiration(d time.Duration) *Builder {
	b.payload.Set(ClaimExpiration, timeNow().Add(d).Unix())
	return b
}

// SetNotBefore sets the nbf claim to the current time plus d, in epoch
// seconds.
func (b *Builder) SetNotBefore(d time.Duration) *Builder {
	b.payload.Set(ClaimNotBefore, timeNow().Add(d).Unix())
	return b
}

// SetIssuedAt sets the iat claim to the current time in epoch seconds.
func (b *Builder) SetIssuedAt() *Builder {
	b.payload.Set(ClaimIssuedAt, timeNow().Unix())
	return b
}

// SetIssuer sets the iss claim.
func (b *Builder) SetIssuer(issuer string) *Builder {
	b.payload.Set(ClaimIssuer, issuer)
	return b
}

// SetSubject sets the sub claim.
func (b *Builder) SetSubject(subject string) *Builder {
	b.payload.Set(ClaimSubject, subject)
	return b
}

// SetAudience sets the aud claim. A single value is written as a string,
// several values as an array, per the string-or-array audience shape.
func (b *Builder) SetAudience(audience ...string) *Builder {
	if len(audience) == 1 {
		b.payload.Set(ClaimAudience, audience[0])
	} else {
		b.payload.Set(ClaimAudience, audience)
	}
	return b
}

// SetJwtID sets the jti claim.
func (b *Builder) SetJwtID(id string) *Builder {
	b.payload.Set(ClaimID, id)
	return b
}

// Build validates the accumulated state, encodes and signs the claims,
// and returns the complete token string. Misconfiguration is reported as
// a *BuildError; no partial token is ever produced.
func (b *Builder) Build() (string, error) {
	if b.header.String(HeaderType) == "" {
		return "", &BuildError{Field: HeaderType, Message: "header must declare a token type"}
	}
	if b.header.String(HeaderAlgorithm) == "" {
		return "", &BuildError{Field: HeaderAlgorithm, Message: "header must declare a signing algorithm"}
	}
	if err := secret.Validate(b.secret); err != nil {
		return "", &BuildError{Field: "secret", Message: "secret violates key policy", Err: err}
	}

	headerSeg, err := encoding.EncodeSegment(b.header)
	if err != nil {
		return "", &BuildError{Field: "header", Message: "failed to encode header", Err: err}
	}
	payloadSeg, err := encoding.EncodeSegment(b.payload)
	if err != nil {
		return "", &BuildError{Field: "payload", Message: "failed to encode payload", Err: err}
	}

	signingString := headerSeg + "." + payloadSeg
	signature := signing.Sign(signingString, []byte(b.secret))

	return signingString + "." + signature, nil
}
