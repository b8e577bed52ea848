package jwt

import (
	"fmt"
	"strings"

	"github.com/tokensmith/jwt/internal/encoding"
	"github.com/tokensmith/jwt/internal/signing"
)

const maxTokenLength = 8192

// Parsed is the decoded, read-only view of a token string: the three raw
// segments plus the header and payload claim mappings. Accessors for
// reserved claims are total, returning "" or 0 when the claim is absent.
type Parsed struct {
	raw        string
	headerSeg  string
	payloadSeg string
	signature  string

	header  *Claims
	payload *Claims
}

// Parse splits a raw token string into its three dot-delimited segments
// and decodes the header and payload. The signature segment is stored
// verbatim; verifying it is the validator's job.
//
// Structural problems surface as ErrMalformedToken (or ErrEmptyToken,
// ErrTokenTooLarge); undecodable segments wrap ErrInvalidSegment; a
// header algorithm other than HS256 is rejected with
// ErrUnsupportedAlgorithm.
func Parse(tokenString string) (*Parsed, error) {
	if len(tokenString) == 0 {
		return nil, ErrEmptyToken
	}
	if len(tokenString) > maxTokenLength {
		return nil, ErrTokenTooLarge
	}

	segments := strings.Split(tokenString, ".")
	if len(segments) != 3 {
		return nil, fmt.Errorf("%w: got %d segments", ErrMalformedToken, len(segments))
	}

	header := NewClaims()
	if err := encoding.DecodeSegment(segments[0], header); err != nil {
		return nil, fmt.Errorf("failed to decode header: %w: %w", ErrInvalidSegment, err)
	}

	if alg := header.String(HeaderAlgorithm); alg != signing.Alg {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedAlgorithm, alg)
	}

	payload := NewClaims()
	if err := encoding.DecodeSegment(segments[1], payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w: %w", ErrInvalidSegment, err)
	}

	return &Parsed{
		raw:        tokenString,
		headerSeg:  segments[0],
		payloadSeg: segments[1],
		signature:  segments[2],
		header:     header,
		payload:    payload,
	}, nil
}

// Raw returns the original token string.
func (p *Parsed) Raw() string { return p.raw }

// Header returns the decoded header claims.
func (p *Parsed) Header() *Claims { return p.header }

// Payload returns the decoded payload claims.
func (p *Parsed) Payload() *Claims { return p.payload }

// Signature returns the verbatim signature segment.
func (p *Parsed) Signature() string { return p.signature }

// SigningString returns the "header.payload" string the signature was
// computed over.
func (p *Parsed) SigningString() string { return p.headerSeg + "." + p.payloadSeg }

// Algorithm returns the header alg claim.
func (p *Parsed) Algorithm() string { return p.header.String(HeaderAlgorithm) }

// Type returns the header typ claim.
func (p *Parsed) Type() string { return p.header.String(HeaderType) }

// Issuer returns the iss claim or "".
func (p *Parsed) Issuer() string { return p.payload.String(ClaimIssuer) }

// Subject returns the sub claim or "".
func (p *Parsed) Subject() string { return p.payload.String(ClaimSubject) }

// Audience returns the aud claim as a slice. A bare string audience is
// returned as a one-element slice; an absent claim yields nil.
func (p *Parsed) Audience() []string { return p.payload.StringArray(ClaimAudience) }

// ExpiresAt returns the exp claim in epoch seconds, or 0.
func (p *Parsed) ExpiresAt() int64 { return p.payload.Int64(ClaimExpiration) }

// NotBefore returns the nbf claim in epoch seconds, or 0.
func (p *Parsed) NotBefore() int64 { return p.payload.Int64(ClaimNotBefore) }

// IssuedAt returns the iat claim in epoch seconds, or 0.
func (p *Parsed) IssuedAt() int64 { return p.payload.Int64(ClaimIssuedAt) }

// ID returns the jti claim or "".
func (p *Parsed) ID() string { return p.payload.String(ClaimID) }
