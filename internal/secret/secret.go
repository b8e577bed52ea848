// Package secret holds the signing-key policy and the constant-time
// primitives shared by the signer and validator.
package secret

import (
	"crypto/subtle"
	"fmt"
)

// MinLength is the minimum accepted secret length in bytes. Anything
// shorter is treated as a configuration error by Build and Config.
const MinLength = 12

// Validate checks a secret against the key policy.
func Validate(secret string) error {
	if len(secret) == 0 {
		return fmt.Errorf("secret must not be empty")
	}
	if len(secret) < MinLength {
		return fmt.Errorf("secret too short: minimum %d bytes required, got %d", MinLength, len(secret))
	}
	return nil
}

// Compare performs a constant-time comparison of two MACs. The runtime
// must not depend on how many leading bytes match.
func Compare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zero overwrites a byte slice holding key material.
func Zero(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
