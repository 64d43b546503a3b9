// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jeranaias/authcode-tui/internal/model"
)

func testCreds() model.Credentials {
	return model.Credentials{Username: "alice", Password: "secret"}
}

// =============================================================================
// ACTIVATION
// =============================================================================

func TestActivateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/initdev" {
			t.Errorf("path = %q, want /initdev", r.URL.Path)
		}
		if got := r.URL.Query().Get("code"); got != "1234" {
			t.Errorf("code = %q, want 1234", got)
		}
		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("alice:secret"))
		if got := r.Header.Get("Authorization"); got != wantAuth {
			t.Errorf("Authorization = %q, want %q", got, wantAuth)
		}
		w.Write([]byte(`{"code":0,"appcode":0,"status":"ok","data":{"session":"abc123"}}`))
	}))
	defer srv.Close()

	c := NewClient(testCreds()).WithBaseURL(srv.URL)
	session, err := c.Activate(context.Background(), "1234")
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if session.Token != "abc123" {
		t.Errorf("Token = %q, want abc123", session.Token)
	}
	if !session.Valid() {
		t.Error("session not valid")
	}
}

func TestActivateInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":1,"appcode":1001,"status":"bad creds"}`))
	}))
	defer srv.Close()

	c := NewClient(testCreds()).WithBaseURL(srv.URL)
	_, err := c.Activate(context.Background(), "1234")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	var authErr *AuthError
	if !errors.As(err, &authErr) || !authErr.Terminal() {
		t.Error("invalid credentials must be terminal")
	}
}

func TestActivateUnknownFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"other appcode", `{"code":1,"appcode":9999,"status":"maintenance"}`},
		{"missing session", `{"code":0,"appcode":0,"status":"ok","data":{}}`},
		{"empty session", `{"code":0,"data":{"session":""}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(testCreds()).WithBaseURL(srv.URL)
			_, err := c.Activate(context.Background(), "1234")
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("err = %v, want *AuthError", err)
			}
			if authErr.Kind != KindUnknown {
				t.Errorf("Kind = %v, want KindUnknown", authErr.Kind)
			}
			if authErr.Terminal() {
				t.Error("unknown failure must not be terminal")
			}
		})
	}
}

// =============================================================================
// CODE FETCH
// =============================================================================

func TestFetchCodeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/authcode" {
			t.Errorf("path = %q, want /authcode", r.URL.Path)
		}
		if got := r.URL.Query().Get("session"); got != "abc123" {
			t.Errorf("session = %q, want abc123", got)
		}
		w.Write([]byte(`{"code":0,"appcode":0,"status":"ok","data":{"authcode":123456,"seconds":30}}`))
	}))
	defer srv.Close()

	before := time.Now()
	c := NewClient(testCreds()).WithBaseURL(srv.URL)
	code, err := c.FetchCode(context.Background(), model.Session{Token: "abc123"})
	if err != nil {
		t.Fatalf("FetchCode failed: %v", err)
	}
	if code.Value != 123456 {
		t.Errorf("Value = %d, want 123456", code.Value)
	}
	if code.ValiditySeconds != 30 {
		t.Errorf("ValiditySeconds = %d, want 30", code.ValiditySeconds)
	}

	// Target lands about 30s out from the fetch.
	target := code.Target()
	if target.Before(before.Add(29*time.Second)) || target.After(time.Now().Add(31*time.Second)) {
		t.Errorf("Target = %v, want ~now+30s", target)
	}
}

func TestFetchCodeSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":2,"appcode":1002,"status":"expired"}`))
	}))
	defer srv.Close()

	c := NewClient(testCreds()).WithBaseURL(srv.URL)
	_, err := c.FetchCode(context.Background(), model.Session{Token: "stale"})
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
}

func TestFetchCodeOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"value too small", `{"code":0,"data":{"authcode":500,"seconds":30}}`},
		{"value at bound", `{"code":0,"data":{"authcode":1000,"seconds":30}}`},
		{"zero seconds", `{"code":0,"data":{"authcode":123456,"seconds":0}}`},
		{"negative seconds", `{"code":0,"data":{"authcode":123456,"seconds":-5}}`},
		{"missing fields", `{"code":0,"data":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(testCreds()).WithBaseURL(srv.URL)
			_, err := c.FetchCode(context.Background(), model.Session{Token: "abc123"})
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("err = %v, want *AuthError", err)
			}
			if authErr.Kind != KindProtocol {
				t.Errorf("Kind = %v, want KindProtocol", authErr.Kind)
			}
		})
	}
}

// =============================================================================
// TRANSPORT FAILURES
// =============================================================================

func TestNetworkErrorOnHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testCreds()).WithBaseURL(srv.URL)
	_, err := c.FetchCode(context.Background(), model.Session{Token: "abc123"})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v, want *AuthError", err)
	}
	if authErr.Kind != KindNetwork {
		t.Errorf("Kind = %v, want KindNetwork", authErr.Kind)
	}
	if authErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", authErr.StatusCode)
	}
}

func TestNetworkErrorOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"code":0,"data":{"authcode":123456,"seconds":30}}`))
	}))
	defer srv.Close()

	c := NewClient(testCreds()).WithBaseURL(srv.URL).WithTimeout(50 * time.Millisecond)
	_, err := c.FetchCode(context.Background(), model.Session{Token: "abc123"})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v, want *AuthError", err)
	}
	if authErr.Kind != KindNetwork {
		t.Errorf("Kind = %v, want KindNetwork", authErr.Kind)
	}
}

func TestNetworkErrorOnConnectionRefused(t *testing.T) {
	c := NewClient(testCreds()).WithBaseURL("http://127.0.0.1:1").WithTimeout(time.Second)
	_, err := c.Activate(context.Background(), "1234")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v, want *AuthError", err)
	}
	if authErr.Kind != KindNetwork {
		t.Errorf("Kind = %v, want KindNetwork", authErr.Kind)
	}
}

// =============================================================================
// CREDENTIAL NORMALIZATION
// =============================================================================

func TestUsernameNormalized(t *testing.T) {
	// U+0041 U+030A (A + combining ring) normalizes to U+00C5.
	c := NewClient(model.Credentials{Username: " A\u030Angstrom ", Password: "x"})
	if c.Username() != "\u00C5ngstrom" {
		t.Errorf("Username = %q, want NFKC-normalized trimmed form", c.Username())
	}
}
