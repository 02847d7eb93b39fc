package broker

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pact-foundation/pact-mock-server/pkg/config"
)

func TestFetchPactsNoPactsReturnsNotFound(t *testing.T) {
	var baseURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/hal+json")
		fmt.Fprintf(w, `{"_links":{"pb:latest-provider-pacts":{"href":"%s/pacts/provider/{provider}/latest","templated":true}}}`, baseURL)
	})
	mux.HandleFunc("/pacts/provider/sad_provider/latest", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	baseURL = srv.URL

	client := NewClient(srv.URL)
	_, err := client.FetchPacts("sad_provider")
	require.NotNil(t, err)
	assert.Equal(t, NotFound, err.Kind)
	assert.Contains(t, err.Message, "No pacts for provider 'sad_provider'")
}

func TestFetchPactsReturnsTwoPacts(t *testing.T) {
	consumerPact := []byte(`{"consumer":{"name":"Consumer"},"provider":{"name":"happy_provider"},"interactions":[],"metadata":{"pact-specification":{"version":"2.0.0"}}}`)
	consumerPact2 := []byte(`{"consumer":{"name":"Consumer2"},"provider":{"name":"happy_provider"},"interactions":[{"description":"a request friends","request":{"method":"GET","path":"/"},"response":{"status":200}}],"metadata":{"pact-specification":{"version":"2.0.0"}}}`)

	var baseURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/hal+json")
		fmt.Fprintf(w, `{"_links":{"pb:latest-provider-pacts":{"href":"%s/pacts/provider/{provider}/latest","templated":true}}}`, baseURL)
	})
	mux.HandleFunc("/pacts/provider/happy_provider/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/hal+json")
		fmt.Fprintf(w, `{"_links":{"pacts":[{"href":"%s/pacts/provider/happy_provider/consumer/Consumer/version/1.0.0"},{"href":"%s/pacts/provider/happy_provider/consumer/Consumer2/version/1.0.0"}]}}`, baseURL, baseURL)
	})
	mux.HandleFunc("/pacts/provider/happy_provider/consumer/Consumer/version/1.0.0", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(consumerPact)
	})
	mux.HandleFunc("/pacts/provider/happy_provider/consumer/Consumer2/version/1.0.0", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(consumerPact2)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	baseURL = srv.URL

	client := NewClient(srv.URL)
	results, err := client.FetchPacts("happy_provider")
	require.Nil(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Nil(t, r.Err)
		require.NotNil(t, r.Document)
	}
	assert.Equal(t, "Consumer", results[0].Document.Consumer.Name)
	assert.Equal(t, "Consumer2", results[1].Document.Consumer.Name)
}

func TestCheckTokenExpiryRejectsExpiredJWT(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	assert.Error(t, CheckTokenExpiry(signed))
}

func TestCheckTokenExpiryAcceptsOpaqueToken(t *testing.T) {
	assert.NoError(t, CheckTokenExpiry("not-a-jwt-at-all"))
}

func TestNewHALClientWarnsOnExpiredBearerToken(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	NewHALClient("http://example.invalid", WithBearerToken(signed), WithLogger(log))
	assert.Contains(t, buf.String(), "bearer token expiry check failed")
}

func TestNewHALClientSilentOnValidBearerToken(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	NewHALClient("http://example.invalid", WithBearerToken(signed), WithLogger(log))
	assert.Empty(t, buf.String())
}

func TestNewClientFromConfigWiresTokenAndTimeout(t *testing.T) {
	var baseURL string
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/hal+json")
		fmt.Fprintf(w, `{"_links":{"pb:latest-provider-pacts":{"href":"%s/pacts/provider/{provider}/latest","templated":true}}}`, baseURL)
	})
	mux.HandleFunc("/pacts/provider/sad_provider/latest", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	baseURL = srv.URL

	cfg := &config.BrokerClientConfig{
		BaseURL:     srv.URL,
		BearerToken: "opaque-token",
		Timeout:     5 * time.Second,
		LogLevel:    "warn",
		LogFormat:   "json",
	}

	client := NewClientFromConfig(cfg)
	assert.Equal(t, 5*time.Second, client.hal.httpClient.Timeout)
	_, err := client.FetchPacts("sad_provider")
	require.NotNil(t, err)
	assert.Equal(t, "Bearer opaque-token", gotAuth)
}
