package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Generation parameter defaults applied when a field is absent.
const (
	DefaultSteps    int64   = 4
	DefaultCfgScale float64 = 7.5
	DefaultWidth    int64   = 512
	DefaultHeight   int64   = 512
)

// GenerationRequest is the body of POST /generate-image.
// Only Prompt is sent upstream. The numeric parameters are echoed into the
// metadata record as received: any JSON value is accepted, numbers decode
// to int64 when they fit and float64 otherwise.
type GenerationRequest struct {
	Prompt   string
	TokenID  TokenID
	UserID   string
	Steps    any
	CfgScale any
	Seed     any
	Width    any
	Height   any
}

// rawGenerationRequest distinguishes absent fields from null or zero values.
type rawGenerationRequest struct {
	Prompt   *string         `json:"prompt"`
	TokenID  TokenID         `json:"tokenId"`
	UserID   json.RawMessage `json:"userId"`
	Steps    json.RawMessage `json:"steps"`
	CfgScale json.RawMessage `json:"cfg_scale"`
	Seed     json.RawMessage `json:"seed"`
	Width    json.RawMessage `json:"width"`
	Height   json.RawMessage `json:"height"`
}

// DecodeGenerationRequest parses a request body and applies defaults.
// No field is required and no ranges or parameter types are checked.
func DecodeGenerationRequest(body io.Reader) (*GenerationRequest, error) {
	var raw rawGenerationRequest
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	req := &GenerationRequest{TokenID: raw.TokenID}
	if raw.Prompt != nil {
		req.Prompt = *raw.Prompt
	}
	if req.TokenID.IsZero() {
		req.TokenID = NewTokenID(UnknownTokenID)
	}

	userID, _, err := decodeValue(raw.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid request body: userId: %w", err)
	}
	req.UserID = Text(userID)

	params := []struct {
		name string
		raw  json.RawMessage
		dst  *any
		def  any
	}{
		{"steps", raw.Steps, &req.Steps, DefaultSteps},
		{"cfg_scale", raw.CfgScale, &req.CfgScale, DefaultCfgScale},
		{"seed", raw.Seed, &req.Seed, nil},
		{"width", raw.Width, &req.Width, DefaultWidth},
		{"height", raw.Height, &req.Height, DefaultHeight},
	}
	for _, p := range params {
		v, present, err := decodeValue(p.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid request body: %s: %w", p.name, err)
		}
		if !present {
			v = p.def
		}
		*p.dst = v
	}

	return req, nil
}

// Anonymous reports whether the request carries no owner.
func (r *GenerationRequest) Anonymous() bool {
	return r.UserID == ""
}

// decodeValue decodes one raw field. present is false when the field was
// absent; an explicit null is present and decodes to nil.
func decodeValue(raw json.RawMessage) (v any, present bool, err error) {
	if len(raw) == 0 {
		return nil, false, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, true, err
	}
	return Normalize(v), true, nil
}

// Normalize converts json.Number values, including nested ones, to int64
// when they fit and float64 otherwise.
func Normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = Normalize(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = Normalize(e)
		}
		return t
	default:
		return v
	}
}

// Text renders a decoded JSON value as an identifier: strings verbatim,
// null as empty, anything else through fmt.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
