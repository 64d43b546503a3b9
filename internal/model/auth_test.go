// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

func TestCredentialsIsComplete(t *testing.T) {
	tests := []struct {
		creds Credentials
		want  bool
	}{
		{Credentials{}, false},
		{Credentials{Username: "alice"}, false},
		{Credentials{Password: "pw"}, false},
		{Credentials{Username: "alice", Password: "pw"}, true},
	}
	for _, tt := range tests {
		if got := tt.creds.IsComplete(); got != tt.want {
			t.Errorf("IsComplete(%+v) = %v, want %v", tt.creds, got, tt.want)
		}
	}
}

func TestSessionValid(t *testing.T) {
	if (Session{}).Valid() {
		t.Error("empty session should be invalid")
	}
	if !(Session{Token: "tok"}).Valid() {
		t.Error("session with token should be valid")
	}
}

func TestAuthCodeTargetAndRemaining(t *testing.T) {
	issued := time.Now()
	code := AuthCode{Value: 4321, ValiditySeconds: 30, IssuedAt: issued}

	if got := code.Target(); !got.Equal(issued.Add(30 * time.Second)) {
		t.Errorf("Target = %v, want issued+30s", got)
	}

	if got := code.Remaining(issued.Add(10 * time.Second)); got != 20*time.Second {
		t.Errorf("Remaining mid-window = %v, want 20s", got)
	}

	// Remaining clamps at zero after expiry.
	if got := code.Remaining(issued.Add(time.Minute)); got != 0 {
		t.Errorf("Remaining past expiry = %v, want 0", got)
	}
}

func TestAuthCodeValid(t *testing.T) {
	tests := []struct {
		code AuthCode
		want bool
	}{
		{AuthCode{Value: 4321, ValiditySeconds: 30}, true},
		{AuthCode{Value: MinAuthCodeValue + 1, ValiditySeconds: 1}, true},
		{AuthCode{Value: MinAuthCodeValue, ValiditySeconds: 30}, false},
		{AuthCode{Value: 999, ValiditySeconds: 30}, false},
		{AuthCode{Value: 4321, ValiditySeconds: 0}, false},
	}
	for _, tt := range tests {
		if got := tt.code.Valid(); got != tt.want {
			t.Errorf("Valid(%+v) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
