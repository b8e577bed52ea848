package jwt

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Reserved claim names as defined in RFC 7519.
const (
	ClaimIssuer     = "iss"
	ClaimSubject    = "sub"
	ClaimAudience   = "aud"
	ClaimExpiration = "exp"
	ClaimNotBefore  = "nbf"
	ClaimIssuedAt   = "iat"
	ClaimID         = "jti"

	// Header claim names.
	HeaderType        = "typ"
	HeaderAlgorithm   = "alg"
	HeaderContentType = "cty"
)

// Claims is an insertion-ordered mapping from claim name to value. Values
// are JSON-representable: strings, integers, booleans, string arrays, or
// nested documents produced by decoding. Serialization preserves the order
// in which claims were first set, so encoding a given sequence of inserts
// is deterministic.
//
// The zero value is not usable; create instances with NewClaims.
type Claims struct {
	keys   []string
	values map[string]any
}

// NewClaims returns an empty claims mapping.
func NewClaims() *Claims {
	return &Claims{
		keys:   make([]string, 0, 8),
		values: make(map[string]any, 8),
	}
}

// Set inserts or overwrites a claim. The first insert of a name fixes its
// position in the serialized output.
func (c *Claims) Set(name string, value any) {
	if _, exists := c.values[name]; !exists {
		c.keys = append(c.keys, name)
	}
	c.values[name] = value
}

// Get returns the raw claim value and whether the claim is present.
func (c *Claims) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Has reports whether a claim is present.
func (c *Claims) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Len returns the number of claims.
func (c *Claims) Len() int {
	return len(c.keys)
}

// Names returns the claim names in insertion order.
func (c *Claims) Names() []string {
	names := make([]string, len(c.keys))
	copy(names, c.keys)
	return names
}

// String returns the claim as a string, or "" when the claim is absent or
// not string-typed.
func (c *Claims) String(name string) string {
	if s, ok := c.values[name].(string); ok {
		return s
	}
	return ""
}

// Int64 returns the claim as an integer, or 0 when the claim is absent or
// not numeric. JSON numbers decoded from a token are handled alongside the
// native integer types a caller may have set; fractional epoch values are
// truncated.
func (c *Claims) Int64(name string) int64 {
	n, _ := claimInt64(c.values[name])
	return n
}

// claimInt64 coerces a claim value to an integer, reporting whether the
// value was numeric at all. Fractional JSON numbers truncate; values
// outside the int64 range are not representable and report false.
func claimInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return floatToInt64(f)
		}
		return 0, false
	case float64:
		return floatToInt64(v)
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	// 2^63 is the first float64 value past math.MaxInt64.
	if f >= 9223372036854775808.0 || f < -9223372036854775808.0 {
		return 0, false
	}
	return int64(f), true
}

// StringArray returns the claim as a slice of strings. A bare string value
// yields a one-element slice, matching the string-or-array shape of the
// aud claim. Absent or incompatible values yield nil.
func (c *Claims) StringArray(name string) []string {
	switch v := c.values[name].(type) {
	case string:
		return []string{v}
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON serializes the claims as a JSON object with keys in
// insertion order.
func (c *Claims) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(c.values[name])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal claim %q: %w", name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object into the claims mapping, preserving
// the key order of the document. Numbers are kept as json.Number so large
// epoch values survive the round trip.
func (c *Claims) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to parse claims: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("claims must be a JSON object, got %v", tok)
	}

	c.keys = c.keys[:0]
	if c.values == nil {
		c.values = make(map[string]any, 8)
	} else {
		clear(c.values)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to parse claim name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("claim name must be a string, got %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to parse claim %q: %w", name, err)
		}
		c.Set(name, value)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to parse claims: %w", err)
	}
	return nil
}
