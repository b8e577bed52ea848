package jwt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimsInsertionOrder(t *testing.T) {
	claims := NewClaims()
	claims.Set("zeta", "z")
	claims.Set("alpha", "a")
	claims.Set("mid", 3)

	data, err := json.Marshal(claims)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"z","alpha":"a","mid":3}`, string(data))

	// Overwriting keeps the original position.
	claims.Set("zeta", "zz")
	data, err = json.Marshal(claims)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"zz","alpha":"a","mid":3}`, string(data))
}

func TestClaimsUnmarshalPreservesOrder(t *testing.T) {
	claims := NewClaims()
	err := json.Unmarshal([]byte(`{"b":1,"a":"x","c":[1,2]}`), claims)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, claims.Names())

	out, err := json.Marshal(claims)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":"x","c":[1,2]}`, string(out))
}

func TestClaimsUnmarshalRejectsNonObjects(t *testing.T) {
	for _, doc := range []string{`[1,2]`, `"text"`, `42`, `null`} {
		claims := NewClaims()
		assert.Error(t, json.Unmarshal([]byte(doc), claims), "document: %s", doc)
	}
}

func TestClaimsDefaultAccessors(t *testing.T) {
	claims := NewClaims()
	claims.Set("name", "alice")
	claims.Set("count", 7)
	claims.Set("big", int64(253402300799))

	assert.Equal(t, "alice", claims.String("name"))
	assert.Equal(t, "", claims.String("missing"))
	assert.Equal(t, "", claims.String("count"), "non-string claim reads as empty string")

	assert.Equal(t, int64(7), claims.Int64("count"))
	assert.Equal(t, int64(253402300799), claims.Int64("big"))
	assert.Equal(t, int64(0), claims.Int64("missing"))
	assert.Equal(t, int64(0), claims.Int64("name"), "non-numeric claim reads as zero")
}

func TestClaimsInt64Coercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int64
	}{
		{"integer json.Number", json.Number("1924992000"), 1924992000},
		{"fractional json.Number truncates", json.Number("1924992000.9"), 1924992000},
		{"float64 truncates", 1924992000.9, 1924992000},
		{"json.Number past int64 range", json.Number("100000000000000000000"), 0},
		{"float64 past int64 range", float64(1e20), 0},
		{"non-numeric json.Number", json.Number("abc"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := NewClaims()
			claims.Set("n", tt.value)
			assert.Equal(t, tt.want, claims.Int64("n"))
		})
	}
}

func TestClaimsNumbersSurviveRoundTrip(t *testing.T) {
	claims := NewClaims()
	claims.Set("exp", int64(1924992000))

	data, err := json.Marshal(claims)
	require.NoError(t, err)

	decoded := NewClaims()
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, int64(1924992000), decoded.Int64("exp"))
}

func TestClaimsStringArray(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"bare string becomes one-element slice", "api", []string{"api"}},
		{"string slice", []string{"api", "web"}, []string{"api", "web"}},
		{"decoded any slice", []any{"api", "web"}, []string{"api", "web"}},
		{"mixed slice rejected", []any{"api", 1}, nil},
		{"numeric value rejected", 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := NewClaims()
			claims.Set("aud", tt.value)
			assert.Equal(t, tt.want, claims.StringArray("aud"))
		})
	}

	assert.Nil(t, NewClaims().StringArray("aud"))
}
