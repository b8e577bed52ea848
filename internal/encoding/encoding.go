// Package encoding implements the base64url JSON segment codec used for
// token headers and payloads.
package encoding

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrDecode is wrapped by every decode failure so callers can classify
// malformed segments with errors.Is.
var ErrDecode = errors.New("invalid token segment")

const (
	// maxSegmentLength bounds a single encoded segment.
	maxSegmentLength = 4096
	// maxDecodedLength bounds the decoded JSON document.
	maxDecodedLength = 2048
)

// EncodeSegment serializes v to JSON and base64url-encodes it without
// padding. When v preserves insertion order (see jwt.Claims), the output
// is deterministic for a given sequence of inserts. The same size bound
// DecodeSegment enforces is applied here, so every segment this function
// produces is accepted back by DecodeSegment.
func EncodeSegment(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal segment: %w", err)
	}
	if len(data) > maxDecodedLength {
		return "", fmt.Errorf("segment too large: %d bytes exceeds the %d byte limit", len(data), maxDecodedLength)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeSegment base64url-decodes segment and JSON-unmarshals the result
// into dest. Padding characters are tolerated and stripped. Invalid
// base64url and invalid JSON both return an error wrapping ErrDecode.
func DecodeSegment(segment string, dest any) error {
	segment = strings.TrimRight(segment, "=")

	if len(segment) == 0 {
		return fmt.Errorf("%w: empty segment", ErrDecode)
	}
	if len(segment) > maxSegmentLength {
		return fmt.Errorf("%w: segment exceeds %d characters", ErrDecode, maxSegmentLength)
	}
	if !isValidBase64URL(segment) {
		return fmt.Errorf("%w: segment contains non-base64url characters", ErrDecode)
	}

	bufLen := base64.RawURLEncoding.DecodedLen(len(segment))
	if bufLen > maxDecodedLength {
		return fmt.Errorf("%w: decoded segment exceeds %d bytes", ErrDecode, maxDecodedLength)
	}

	buf := make([]byte, bufLen)
	n, err := base64.RawURLEncoding.Decode(buf, []byte(segment))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if err := json.Unmarshal(buf[:n], dest); err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", ErrDecode, err)
	}
	return nil
}

func isValidBase64URL(s string) bool {
	for _, char := range s {
		if !((char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '-' || char == '_') {
			return false
		}
	}
	return true
}
