// Package signing computes and verifies HMAC-SHA256 token signatures.
package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/tokensmith/jwt/internal/secret"
)

// Alg is the only signing algorithm this library produces or accepts.
const Alg = "HS256"

// ErrSignatureMismatch reports that a recomputed signature does not match
// the one carried by the token.
var ErrSignatureMismatch = errors.New("signature verification failed")

// Sign computes HMAC-SHA256 over signingString (the "header.payload"
// string) keyed with key and returns the base64url-encoded MAC without
// padding. Sign is a pure function of its inputs.
func Sign(signingString string, key []byte) string {
	hasher := hmac.New(sha256.New, key)
	hasher.Write([]byte(signingString))
	mac := hasher.Sum(nil)
	defer secret.Zero(mac)

	return base64.RawURLEncoding.EncodeToString(mac)
}

// Verify recomputes the signature for signingString and compares it to the
// supplied base64url signature segment in constant time. Decoding is
// strict: non-zero trailing bits are rejected, so every single-character
// change to the segment invalidates it.
func Verify(signingString, signature string, key []byte) error {
	sigBytes, err := base64.RawURLEncoding.Strict().DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: undecodable signature segment: %v", ErrSignatureMismatch, err)
	}
	defer secret.Zero(sigBytes)

	hasher := hmac.New(sha256.New, key)
	hasher.Write([]byte(signingString))
	expected := hasher.Sum(nil)
	defer secret.Zero(expected)

	if !secret.Compare(sigBytes, expected) {
		return ErrSignatureMismatch
	}
	return nil
}
