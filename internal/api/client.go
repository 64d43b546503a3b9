// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the code authority: the
// activation exchange that trades credentials plus a one-time digit code for
// a session token, and the code fetch that trades the session token for a
// rotating time-boxed auth code.
//
// All responses share one JSON envelope; failures are classified into the
// AuthError taxonomy so the lifecycle engine can decide between automatic
// retry and forced logout without inspecting wire details.
package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/authcode-tui/internal/model"
)

const (
	// DefaultBaseURL is the authority endpoint used when none is configured.
	DefaultBaseURL = "http://127.0.0.1:9000"

	// DefaultTimeout bounds each request end to end.
	DefaultTimeout = 5 * time.Second

	// MaxResponseSize caps the response body read. Envelopes are tiny; a
	// larger body is not this protocol.
	MaxResponseSize = 1 << 20 // 1MB
)

const userAgent = "authcode-tui/0.1.0"

// Client talks to the code authority with HTTP basic authentication.
type Client struct {
	baseURL    string
	creds      model.Credentials
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a client for the given credentials. The username is
// NFKC-normalized so terminal input with composed and decomposed unicode
// forms authenticates identically.
func NewClient(creds model.Credentials) *Client {
	creds.Username = norm.NFKC.String(strings.TrimSpace(creds.Username))
	return &Client{
		baseURL: DefaultBaseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		timeout: DefaultTimeout,
	}
}

// WithBaseURL sets a custom authority base URL.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimSuffix(u, "/")
	return c
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	c.httpClient.Timeout = d
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Username returns the normalized username the client authenticates as.
func (c *Client) Username() string {
	return c.creds.Username
}

// Activate exchanges the activation digit string for a session token via
// GET /initdev?code={digits}.
//
// Classification: transport failure or non-2xx status is Network; an
// undecodable body is Protocol; a failure envelope with appcode 1001 is
// InvalidCredentials; any other failure envelope, or a success envelope
// missing the session field, is Unknown.
func (c *Client) Activate(ctx context.Context, digits string) (model.Session, error) {
	env, err := c.get(ctx, "/initdev", url.Values{"code": {digits}})
	if err != nil {
		return model.Session{}, err
	}

	if !env.OK() {
		if env.AppCode == AppCodeInvalidCredentials {
			return model.Session{}, &AuthError{Kind: KindInvalidCredentials, Message: env.Status}
		}
		return model.Session{}, &AuthError{Kind: KindUnknown, Message: env.Status}
	}

	token, ok := env.StringField("session")
	if !ok || token == "" {
		return model.Session{}, &AuthError{Kind: KindUnknown, Message: "activation response missing session"}
	}

	return model.Session{Token: token, IssuedAt: time.Now()}, nil
}

// FetchCode exchanges the session token for the current auth code via
// GET /authcode?session={token}.
//
// Classification mirrors Activate, except a failure envelope with appcode
// 1002 is SessionExpired, and a success envelope whose code value or
// validity window violates the issuance bounds is Protocol.
func (c *Client) FetchCode(ctx context.Context, session model.Session) (*model.AuthCode, error) {
	env, err := c.get(ctx, "/authcode", url.Values{"session": {session.Token}})
	if err != nil {
		return nil, err
	}

	if !env.OK() {
		if env.AppCode == AppCodeSessionExpired {
			return nil, &AuthError{Kind: KindSessionExpired, Message: env.Status}
		}
		return nil, &AuthError{Kind: KindUnknown, Message: env.Status}
	}

	value, okValue := env.IntField("authcode")
	seconds, okSeconds := env.IntField("seconds")
	if !okValue || !okSeconds {
		return nil, protocolError("code response missing authcode or seconds")
	}

	code := &model.AuthCode{
		Value:           value,
		ValiditySeconds: seconds,
		IssuedAt:        time.Now(),
	}
	if !code.Valid() {
		return nil, protocolError(fmt.Sprintf("code out of bounds: authcode=%d seconds=%d", value, seconds))
	}
	return code, nil
}

// get performs a single authenticated GET and decodes the envelope.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, networkError(0, fmt.Sprintf("failed to create request: %v", err))
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and connection failures land here.
		return nil, networkError(0, err.Error())
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return nil, networkError(resp.StatusCode, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, networkError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return DecodeEnvelope(body)
}

// setHeaders sets the basic-auth and identification headers.
func (c *Client) setHeaders(req *http.Request) {
	pair := c.creds.Username + ":" + c.creds.Password
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(pair)))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
}

// readResponse reads the body with a size cap.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}
