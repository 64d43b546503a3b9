// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain types shared across the client:
// credentials, sessions, and server-issued auth codes.
package model

import "time"

// MinAuthCodeValue is the exclusive lower bound for a valid code value.
// The server never issues codes at or below this value.
const MinAuthCodeValue = 1000

// Credentials holds the long-lived login pair entered by the user.
type Credentials struct {
	Username string
	Password string
}

// IsComplete reports whether both fields are set.
func (c Credentials) IsComplete() bool {
	return c.Username != "" && c.Password != ""
}

// Session is the short-lived token returned by activation. It replaces
// username/password for routine code requests.
type Session struct {
	Token    string
	IssuedAt time.Time
}

// Valid reports whether the session carries a token.
func (s Session) Valid() bool {
	return s.Token != ""
}

// AuthCode is a server-issued, time-boxed numeric code. IssuedAt is captured
// locally the moment the response is decoded, so it carries Go's monotonic
// clock reading and the expiry target survives wall-clock jumps.
type AuthCode struct {
	Value           int
	ValiditySeconds int
	IssuedAt        time.Time
}

// Target returns the local monotonic instant at which the code expires.
func (a AuthCode) Target() time.Time {
	return a.IssuedAt.Add(time.Duration(a.ValiditySeconds) * time.Second)
}

// Remaining returns the time left before expiry, never negative.
func (a AuthCode) Remaining(now time.Time) time.Duration {
	r := a.Target().Sub(now)
	if r < 0 {
		return 0
	}
	return r
}

// Valid reports whether the code satisfies the server's issuance bounds.
func (a AuthCode) Valid() bool {
	return a.Value > MinAuthCodeValue && a.ValiditySeconds > 0
}
