// Package config loads the runtime settings for the mock server and the
// broker client from JSON or YAML files, auto-detecting the format from
// the file extension the way the teacher's configuration loader does.
package config

import "time"

// MockServerConfig is the on-disk configuration for pkg/mockserver.Server:
// the port to bind, request-handling limits, and the logger format.
type MockServerConfig struct {
	// Port to listen on; 0 selects an ephemeral port.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`
	// MaxBodyBytes caps the size of an inbound request body (spec.md §4.3
	// recommends at least 8 MiB). 0 selects the package default.
	MaxBodyBytes int64 `json:"maxBodyBytes,omitempty" yaml:"maxBodyBytes,omitempty"`
	// ShutdownGrace is how long shutdown() waits for in-flight requests to
	// finish before cancelling them (spec.md §4.3/§5). 0 selects the
	// package default of 10s.
	ShutdownGrace time.Duration `json:"shutdownGrace,omitempty" yaml:"shutdownGrace,omitempty"`
	// LogLevel and LogFormat configure the injected slog.Logger.
	LogLevel  string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	LogFormat string `json:"logFormat,omitempty" yaml:"logFormat,omitempty"`
}

// BrokerClientConfig is the on-disk configuration for pkg/broker.Client.
type BrokerClientConfig struct {
	// BaseURL is the pact broker's root URL.
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	// BearerToken, when set, is sent as "Authorization: Bearer <token>" on
	// every request (spec.md §4.4/DOMAIN STACK — golang-jwt pre-validates
	// its expiry before first use).
	BearerToken string `json:"bearerToken,omitempty" yaml:"bearerToken,omitempty"`
	// Timeout bounds every broker HTTP call. 0 selects the package default.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	LogLevel  string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	LogFormat string `json:"logFormat,omitempty" yaml:"logFormat,omitempty"`
}
