// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed exchange with the authority.
type ErrorKind int

const (
	// KindNetwork is a transport failure or timeout. Includes the HTTP
	// status when the server responded with a non-2xx status.
	KindNetwork ErrorKind = iota

	// KindProtocol is a malformed or semantically incomplete envelope.
	KindProtocol

	// KindInvalidCredentials means the authority rejected the login pair
	// or activation digits (appcode 1001). Terminal for activation.
	KindInvalidCredentials

	// KindSessionExpired means the authority invalidated the session
	// (appcode 1002). Terminal for the session.
	KindSessionExpired

	// KindUnknown is a well-formed failure envelope that matches no
	// recognized application code.
	KindUnknown
)

// String returns a short label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindProtocol:
		return "protocol"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindSessionExpired:
		return "session_expired"
	default:
		return "unknown"
	}
}

// Application codes the authority uses to disambiguate failures.
const (
	AppCodeInvalidCredentials = 1001
	AppCodeSessionExpired     = 1002
)

// Sentinel errors for callers that only care about the class of failure.
var (
	// ErrInvalidCredentials indicates the login pair or digits were rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired indicates the session token is no longer accepted.
	ErrSessionExpired = errors.New("session expired")
)

// AuthError is the typed error returned by every client operation.
type AuthError struct {
	Kind       ErrorKind
	StatusCode int    // HTTP status, when one was received
	Message    string // status text from the envelope, when present
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("auth %s error (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	case e.Message != "":
		return fmt.Sprintf("auth %s error: %s", e.Kind, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("auth %s error (HTTP %d)", e.Kind, e.StatusCode)
	default:
		return fmt.Sprintf("auth %s error", e.Kind)
	}
}

// Unwrap maps terminal kinds onto their sentinel errors so callers can use
// errors.Is without inspecting Kind.
func (e *AuthError) Unwrap() error {
	switch e.Kind {
	case KindInvalidCredentials:
		return ErrInvalidCredentials
	case KindSessionExpired:
		return ErrSessionExpired
	default:
		return nil
	}
}

// Terminal reports whether the failure can never succeed on retry with the
// same inputs. Terminal errors force navigation back to an earlier stage.
func (e *AuthError) Terminal() bool {
	return e.Kind == KindInvalidCredentials || e.Kind == KindSessionExpired
}

// Retryable reports whether an automatic retry is permitted for a code
// fetch: every non-terminal failure, malformed responses included, retries
// after the fixed delay. Activation never auto-retries regardless of this
// value.
func (e *AuthError) Retryable() bool {
	return !e.Terminal()
}

// UserMessage returns a human-readable description suitable for display.
func (e *AuthError) UserMessage() string {
	switch e.Kind {
	case KindNetwork:
		if e.StatusCode != 0 {
			return fmt.Sprintf("server unreachable (HTTP %d)", e.StatusCode)
		}
		return "server unreachable"
	case KindProtocol:
		return "unexpected server response"
	case KindInvalidCredentials:
		return "username, password, or activation code rejected"
	case KindSessionExpired:
		return "session expired, log in again"
	default:
		if e.Message != "" {
			return e.Message
		}
		return "request failed"
	}
}

// networkError builds a Network AuthError.
func networkError(status int, msg string) *AuthError {
	return &AuthError{Kind: KindNetwork, StatusCode: status, Message: msg}
}

// protocolError builds a Protocol AuthError.
func protocolError(msg string) *AuthError {
	return &AuthError{Kind: KindProtocol, Message: msg}
}
