package types

import (
	"bytes"
	"encoding/json"
	"errors"
)

// UnknownTokenID is used when a request carries no tokenId.
const UnknownTokenID = "unknown"

// TokenID is an opaque JSON scalar identifying the external record a
// generation belongs to. The literal is kept as sent so responses
// echo the caller's type (string or number).
type TokenID struct {
	raw json.RawMessage
}

// NewTokenID builds a string token identifier.
func NewTokenID(s string) TokenID {
	b, _ := json.Marshal(s)
	return TokenID{raw: b}
}

// IsZero reports whether no identifier was supplied.
func (t TokenID) IsZero() bool {
	return len(t.raw) == 0 || bytes.Equal(t.raw, []byte("null"))
}

// String returns the identifier as text: JSON strings are unquoted,
// numbers and other scalars are returned verbatim.
func (t TokenID) String() string {
	if t.IsZero() {
		return ""
	}
	var s string
	if err := json.Unmarshal(t.raw, &s); err == nil {
		return s
	}
	return string(t.raw)
}

// Value returns the decoded scalar for storage drivers that keep the
// caller's type (string, int64, float64 or bool).
func (t TokenID) Value() any {
	if t.IsZero() {
		return nil
	}
	v, _, err := decodeValue(t.raw)
	if err != nil {
		return t.String()
	}
	return v
}

// MarshalJSON echoes the literal as received.
func (t TokenID) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.raw, nil
}

// UnmarshalJSON accepts any JSON scalar. Objects and arrays are rejected.
func (t *TokenID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return errors.New("tokenId must be a scalar")
	}
	t.raw = append(t.raw[:0], trimmed...)
	return nil
}
