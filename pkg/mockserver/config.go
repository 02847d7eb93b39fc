package mockserver

import (
	"github.com/pact-foundation/pact-mock-server/pkg/config"
	"github.com/pact-foundation/pact-mock-server/pkg/logging"
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// NewFromConfig constructs a Server for doc, the config-driven analogue of
// New: cfg.LogLevel/cfg.LogFormat are mapped through
// logging.ParseLevel/ParseFormat/New into WithLogger, and
// cfg.MaxBodyBytes/cfg.ShutdownGrace into WithMaxBodyBytes/
// WithShutdownGrace. cfg.Port is not consumed here — it is the argument to
// Start, not a constructor-time setting.
func NewFromConfig(doc *pact.PactDocument, cfg *config.MockServerConfig, opts ...Option) *Server {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logCfg.Format = logging.ParseFormat(cfg.LogFormat)
	log := logging.New(logCfg)

	all := []Option{
		WithLogger(log),
		WithMaxBodyBytes(cfg.MaxBodyBytes),
		WithShutdownGrace(cfg.ShutdownGrace),
	}
	all = append(all, opts...)

	return New(doc, all...)
}
