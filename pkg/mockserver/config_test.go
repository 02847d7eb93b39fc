package mockserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pact-foundation/pact-mock-server/pkg/config"
)

func TestNewFromConfigAppliesBodyAndGraceSettings(t *testing.T) {
	cfg := &config.MockServerConfig{
		Port:          0,
		MaxBodyBytes:  1024,
		ShutdownGrace: 5 * time.Millisecond,
		LogLevel:      "debug",
		LogFormat:     "json",
	}

	srv := NewFromConfig(greetingDoc(), cfg)
	assert.Equal(t, int64(1024), srv.maxBodyBytes)
	assert.Equal(t, 5*time.Millisecond, srv.shutdownGrace)
	assert.NotNil(t, srv.log)
}

func TestNewFromConfigServesRequests(t *testing.T) {
	cfg := &config.MockServerConfig{MaxBodyBytes: 1 << 20, ShutdownGrace: time.Second}

	srv := NewFromConfig(greetingDoc(), cfg)
	require.NoError(t, srv.Start(0))
	defer srv.Shutdown()

	resp, err := http.Get(srv.URL() + "/greet")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewFromConfigOptionsOverrideConfig(t *testing.T) {
	cfg := &config.MockServerConfig{MaxBodyBytes: 1024, ShutdownGrace: time.Second}

	srv := NewFromConfig(greetingDoc(), cfg, WithMaxBodyBytes(2048))
	assert.Equal(t, int64(2048), srv.maxBodyBytes)
}
