package jwt

import (
	"time"
)

// BuildToken creates a signed token for a single identity. The payload
// carries user_id, iss, iat, and exp = now + expiresIn. For custom claim
// sets use the Builder directly.
func BuildToken(userID any, secretKey string, expiresIn time.Duration, issuer string) (string, error) {
	return NewBuilder().
		AddPayload("user_id", userID).
		SetIssuer(issuer).
		SetIssuedAt().
		SetExpiration(expiresIn).
		SetSecret(secretKey).
		Build()
}

// ValidateToken reports whether tokenString is structurally sound, inside
// its time window, and carries a signature matching secretKey. All failure
// kinds collapse to false; callers that need to distinguish them should
// use Parse and Validator directly.
func ValidateToken(tokenString, secretKey string) bool {
	return Validate(tokenString, secretKey)
}
