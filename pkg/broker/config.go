package broker

import (
	"net/http"

	"github.com/pact-foundation/pact-mock-server/pkg/config"
	"github.com/pact-foundation/pact-mock-server/pkg/logging"
)

// NewClientFromConfig constructs a Client rooted at cfg.BaseURL, the
// config-driven analogue of NewClient: cfg.LogLevel/cfg.LogFormat are
// mapped through logging.ParseLevel/ParseFormat/New into WithClientLogger,
// cfg.BearerToken (if set) through WithToken, and cfg.Timeout (if set)
// through a custom *http.Client.
func NewClientFromConfig(cfg *config.BrokerClientConfig, opts ...ClientOption) *Client {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logCfg.Format = logging.ParseFormat(cfg.LogFormat)
	log := logging.New(logCfg)

	all := []ClientOption{WithClientLogger(log)}
	if cfg.BearerToken != "" {
		all = append(all, WithToken(cfg.BearerToken))
	}
	if cfg.Timeout > 0 {
		all = append(all, ClientOption(WithHTTPClient(&http.Client{Timeout: cfg.Timeout})))
	}
	all = append(all, opts...)

	return NewClient(cfg.BaseURL, all...)
}
