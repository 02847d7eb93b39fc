package broker

import (
	"encoding/json"
	"log/slog"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
	"github.com/pact-foundation/pact-mock-server/pkg/pact/serialize"
)

// PactOrError is one element of FetchPacts' result: a successfully parsed
// document, or the error encountered fetching/parsing it. Exactly one of
// the two fields is set.
type PactOrError struct {
	Document *pact.PactDocument
	Err      error
}

// Client discovers pacts to verify from a Pact Broker instance.
type Client struct {
	hal *HALClient
}

// ClientOption configures a Client.
type ClientOption func(*HALClient)

// WithToken authenticates every broker request with a bearer token.
func WithToken(token string) ClientOption {
	return ClientOption(WithBearerToken(token))
}

// WithClientLogger sets the operational logger for a Client's underlying
// HALClient (e.g. the bearer-token expiry warning).
func WithClientLogger(log *slog.Logger) ClientOption {
	return ClientOption(WithLogger(log))
}

// NewClient constructs a Client rooted at brokerBaseURL.
func NewClient(brokerBaseURL string, opts ...ClientOption) *Client {
	halOpts := make([]func(*HALClient), len(opts))
	for i, o := range opts {
		halOpts[i] = (func(*HALClient))(o)
	}
	return &Client{hal: NewHALClient(brokerBaseURL, halOpts...)}
}

// FetchPacts implements spec.md §4.4: discover pacts for providerName by
// walking the broker's HAL API, returning a sequence of results so a
// per-pact parse failure does not abort the overall discovery.
func (c *Client) FetchPacts(providerName string) ([]PactOrError, *Error) {
	values := map[string]string{"provider": providerName}

	if _, err := c.hal.navigate("pb:latest-provider-pacts", values); err != nil {
		if err.Kind == NotFound {
			return nil, newError(NotFound,
				"No pacts for provider '%s' where found in the pact broker. URL: '%s'", providerName, c.hal.baseURL)
		}
		return nil, err
	}

	links, err := c.hal.iterLinks("pacts")
	if err != nil {
		return nil, err
	}

	results := make([]PactOrError, 0, len(links))
	for _, l := range links {
		if !l.HasHref {
			results = append(results, PactOrError{Err: newError(LinkError,
				"Expected a HAL+JSON response from the pact broker, but got a link with no HREF. URL: '%s', LINK: '%s'",
				c.hal.baseURL, l.Name)})
			continue
		}
		raw, ferr := c.hal.fetchURL(l, values)
		if ferr != nil {
			results = append(results, PactOrError{Err: ferr})
			continue
		}
		doc, perr := decodePactResource(raw)
		if perr != nil {
			results = append(results, PactOrError{Err: perr})
			continue
		}
		results = append(results, PactOrError{Document: doc})
	}
	return results, nil
}

func decodePactResource(raw interface{}) (*pact.PactDocument, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	doc, parseErr := serialize.Parse(data)
	if parseErr != nil && doc == nil {
		return nil, parseErr
	}
	return doc, nil
}
