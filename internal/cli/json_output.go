// json_output.go - JSON output support for scripting integration.
//
// Provides a standardized JSON output format for all CLI commands so
// status and login state can be consumed by scripts and monitoring.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Error:     nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
// Human-readable messages should go to stderr when JSON mode is enabled.
func (r *JSONResponse) Print() error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// OutputJSON is a helper function that outputs either JSON or runs a normal handler.
// If jsonMode is true, it outputs JSON and handles errors. Otherwise it runs the handler.
func OutputJSON(jsonMode bool, command string, handler func() (interface{}, error)) error {
	if !jsonMode {
		_, err := handler()
		return err
	}

	data, err := handler()
	if err != nil {
		resp := NewJSONErrorResponse(command, err)
		resp.Print()
		return err
	}

	resp := NewJSONResponse(command, data)
	return resp.Print()
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// StatusData represents the data returned by the status command.
type StatusData struct {
	Server StatusServerInfo `json:"server"`
	Login  StatusLoginInfo  `json:"login"`
}

// StatusServerInfo contains authority endpoint information.
type StatusServerInfo struct {
	BaseURL        string `json:"base_url"`
	TimeoutSecs    int    `json:"timeout_secs"`
	RetryDelaySecs int    `json:"retry_delay_secs"`
	Reachable      *bool  `json:"reachable,omitempty"`
}

// StatusLoginInfo contains stored login state.
type StatusLoginInfo struct {
	Username   string `json:"username,omitempty"`
	LoggedIn   bool   `json:"logged_in"`
	HasSession bool   `json:"has_session"`
	InstallID  string `json:"install_id,omitempty"`
}

// ConfigData represents the data returned by the config show command.
type ConfigData struct {
	Server ConfigServerInfo `json:"server"`
	UI     ConfigUIInfo     `json:"ui"`
	Path   string           `json:"config_path"`
}

// ConfigServerInfo contains authority configuration.
type ConfigServerInfo struct {
	BaseURL        string `json:"base_url"`
	TimeoutSecs    int    `json:"timeout_secs"`
	RetryDelaySecs int    `json:"retry_delay_secs"`
}

// ConfigUIInfo contains display preferences.
type ConfigUIInfo struct {
	Theme       string `json:"theme"`
	CompactMode bool   `json:"compact_mode"`
}

// LoginData represents the data returned by the login command.
type LoginData struct {
	Username      string `json:"username"`
	SessionActive bool   `json:"session_active"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}
