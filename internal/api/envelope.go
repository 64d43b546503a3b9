// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"fmt"
)

// Envelope is the decoded shape of every authority response.
type Envelope struct {
	Code    int
	AppCode int
	Status  string
	Data    map[string]any
}

// wireEnvelope mirrors the JSON on the wire. Code is a pointer so a missing
// result-code field can be told apart from an explicit zero.
type wireEnvelope struct {
	Code    *int           `json:"code"`
	AppCode int            `json:"appcode"`
	Status  string         `json:"status"`
	Data    map[string]any `json:"data"`
}

// DecodeEnvelope parses raw response bytes into an Envelope. Unknown fields
// inside data are kept; an absent or null data field becomes an empty map.
// Bytes that are not JSON, or JSON without a result-code field, fail with a
// Protocol error.
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	var wire wireEnvelope
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, protocolError(fmt.Sprintf("malformed envelope: %v", err))
	}
	if wire.Code == nil {
		return nil, protocolError("envelope missing result code")
	}

	env := &Envelope{
		Code:    *wire.Code,
		AppCode: wire.AppCode,
		Status:  wire.Status,
		Data:    wire.Data,
	}
	if env.Data == nil {
		env.Data = map[string]any{}
	}
	return env, nil
}

// OK reports whether the envelope signals success.
func (e *Envelope) OK() bool {
	return e.Code == 0
}

// StringField returns data[key] as a string, with ok=false when the field is
// absent or not a string.
func (e *Envelope) StringField(key string) (string, bool) {
	v, ok := e.Data[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IntField returns data[key] as an int. JSON numbers decode as float64, so
// the value is accepted only if it is integral.
func (e *Envelope) IntField(key string) (int, bool) {
	v, ok := e.Data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		i := int(n)
		if float64(i) != n {
			return 0, false
		}
		return i, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
