package broker

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ohler55/ojg/jp"

	"github.com/pact-foundation/pact-mock-server/pkg/logging"
)

var templateTokenRe = regexp.MustCompile(`\{(\w+)\}`)

// link is a single entry from a HAL resource's "_links" object.
type link struct {
	Name      string
	Href      string
	HasHref   bool
	Templated bool
}

func linkFromJSON(name string, data map[string]interface{}) link {
	l := link{Name: name}
	if href, ok := data["href"].(string); ok {
		l.Href = href
		l.HasHref = true
	}
	if templated, ok := data["templated"].(bool); ok {
		l.Templated = templated
	}
	return l
}

// HALClient walks a HAL+JSON hypermedia API one link at a time, keeping the
// most recently fetched resource as its navigation cursor.
type HALClient struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
	log         *slog.Logger
	pathInfo    interface{}
	hasPathInfo bool
}

// NewHALClient constructs a client rooted at baseURL. If a bearer token is
// set by WithBearerToken, its expiry is checked once here (spec.md §4.4's
// DOMAIN STACK addition): an already-expired token only produces a warning
// through the injected logger, since authentication is the broker's
// concern, not this client's — the token is still sent.
func NewHALClient(baseURL string, opts ...func(*HALClient)) *HALClient {
	c := &HALClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.bearerToken != "" {
		if err := CheckTokenExpiry(c.bearerToken); err != nil {
			c.log.Warn("pact broker bearer token expiry check failed", "error", err)
		}
	}
	return c
}

// WithBearerToken attaches a bearer token to every request this client makes.
func WithBearerToken(token string) func(*HALClient) {
	return func(c *HALClient) {
		c.bearerToken = token
	}
}

// WithHTTPClient overrides the underlying *http.Client (tests, custom
// transports).
func WithHTTPClient(hc *http.Client) func(*HALClient) {
	return func(c *HALClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the operational logger used for diagnostics such as the
// bearer-token expiry warning.
func WithLogger(log *slog.Logger) func(*HALClient) {
	return func(c *HALClient) {
		if log != nil {
			c.log = log
		}
	}
}

// navigate fetches the broker root (on first use) then follows link,
// caching the result as the new navigation cursor.
func (c *HALClient) navigate(linkName string, values map[string]string) (interface{}, *Error) {
	if !c.hasPathInfo {
		root, err := c.fetch("/")
		if err != nil {
			return nil, err
		}
		c.pathInfo = root
		c.hasPathInfo = true
	}
	resource, err := c.fetchLink(linkName, values)
	if err != nil {
		return nil, err
	}
	c.pathInfo = resource
	return c.pathInfo, nil
}

func (c *HALClient) linksObject() (map[string]interface{}, *Error) {
	if !c.hasPathInfo {
		return nil, newError(LinkError,
			"No previous resource has been fetched from the pact broker. URL: '%s'", c.baseURL)
	}
	expr, perr := jp.ParseString("$._links")
	if perr != nil {
		return nil, newError(LinkError, "internal: %s", perr)
	}
	links, ok := firstResult(expr, c.pathInfo)
	if !ok {
		return nil, newError(LinkError,
			"Expected a HAL+JSON response from the pact broker, but got a response with no '_links'. URL: '%s'", c.baseURL)
	}
	obj, ok := links.(map[string]interface{})
	if !ok {
		return nil, newError(LinkError,
			"Expected a HAL+JSON response from the pact broker, but '_links' was not an object. URL: '%s'", c.baseURL)
	}
	return obj, nil
}

func (c *HALClient) findLink(linkName string) (link, *Error) {
	links, lerr := c.linksObject()
	if lerr != nil {
		return link{}, lerr
	}
	raw, ok := links[linkName]
	if !ok {
		names := make([]string, 0, len(links))
		for k := range links {
			names = append(names, k)
		}
		sort.Strings(names)
		return link{}, newError(LinkError,
			"Link '%s' was not found in the response, only the following links where found: %s. URL: '%s', LINK: '%s'",
			linkName, strings.Join(names, ", "), c.baseURL, linkName)
	}
	data, ok := raw.(map[string]interface{})
	if !ok {
		return link{}, newError(LinkError,
			"Link is malformed, expected an object but got %v. URL: '%s', LINK: '%s'", raw, c.baseURL, linkName)
	}
	return linkFromJSON(linkName, data), nil
}

func (c *HALClient) fetchLink(linkName string, values map[string]string) (interface{}, *Error) {
	l, err := c.findLink(linkName)
	if err != nil {
		return nil, err
	}
	return c.fetchURL(l, values)
}

func (c *HALClient) fetchURL(l link, values map[string]string) (interface{}, *Error) {
	var href string
	if l.Templated {
		resolved, err := c.parseLinkURL(l, values)
		if err != nil {
			return nil, err
		}
		href = resolved
	} else {
		if !l.HasHref {
			return nil, newError(LinkError,
				"Link is malformed, there is no href. URL: '%s', LINK: '%s'", c.baseURL, l.Name)
		}
		href = l.Href
	}

	base, perr := url.Parse(c.baseURL)
	if perr != nil {
		return nil, newError(UrlError, "%s", perr)
	}
	resolved, perr := base.Parse(href)
	if perr != nil {
		return nil, newError(UrlError, "%s", perr)
	}
	return c.fetch(resolved.String())
}

func (c *HALClient) parseLinkURL(l link, values map[string]string) (string, *Error) {
	if !l.HasHref {
		return "", newError(LinkError,
			"Expected a HAL+JSON response from the pact broker, but got a link with no HREF. URL: '%s', LINK: '%s'", c.baseURL, l.Name)
	}
	resolved := templateTokenRe.ReplaceAllStringFunc(l.Href, func(token string) string {
		key := templateTokenRe.FindStringSubmatch(token)[1]
		if val, ok := values[key]; ok {
			return val
		}
		return token
	})
	return resolved, nil
}

func (c *HALClient) iterLinks(linkName string) ([]link, *Error) {
	links, lerr := c.linksObject()
	if lerr != nil {
		return nil, lerr
	}
	raw, ok := links[linkName]
	if !ok {
		names := make([]string, 0, len(links))
		for k := range links {
			names = append(names, k)
		}
		sort.Strings(names)
		return nil, newError(LinkError,
			"Link '%s' was not found in the response, only the following links where found: %s. URL: '%s', LINK: '%s'",
			linkName, strings.Join(names, ", "), c.baseURL, linkName)
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, newError(LinkError,
			"Link is malformed, expected an array but got %v. URL: '%s', LINK: '%s'", raw, c.baseURL, linkName)
	}
	out := make([]link, 0, len(arr))
	for _, item := range arr {
		switch v := item.(type) {
		case map[string]interface{}:
			out = append(out, linkFromJSON(linkName, v))
		case string:
			out = append(out, link{Name: linkName, Href: v, HasHref: true})
		default:
			out = append(out, link{Name: linkName, Href: fmt.Sprintf("%v", v), HasHref: true})
		}
	}
	return out, nil
}

// fetch performs a GET against an absolute or broker-relative path,
// requiring a HAL or plain JSON response.
func (c *HALClient) fetch(target string) (interface{}, *Error) {
	full := target
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		full = c.baseURL + "/" + strings.TrimLeft(target, "/")
	}

	req, rerr := http.NewRequest(http.MethodGet, full, nil)
	if rerr != nil {
		return nil, newError(UrlError, "%s", rerr)
	}
	req.Header.Set("Accept", "application/hal+json, application/json")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, derr := c.httpClient.Do(req)
	if derr != nil {
		return nil, newError(IoError, "Failed to access pact broker path '%s' - %s. URL: '%s'", target, derr, c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, newError(NotFound, "Request to pact broker path '%s' failed: %d. URL: '%s'", target, resp.StatusCode, c.baseURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newError(IoError, "Request to pact broker path '%s' failed: %d. URL: '%s'", target, resp.StatusCode, c.baseURL)
	}

	ct := contentType(resp.Header.Get("Content-Type"))
	if !isJSONContentType(ct) {
		return nil, newError(ContentError,
			"Did not get a HAL response from pact broker path '%s', content type is '%s'. URL: '%s'", target, ct, c.baseURL)
	}

	body, ierr := io.ReadAll(resp.Body)
	if ierr != nil {
		return nil, newError(IoError, "%s", ierr)
	}

	var parsed interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, newError(ContentError,
			"Did not get a valid HAL response body from pact broker path '%s' - %s. URL: '%s'", target, err, c.baseURL)
	}
	return parsed, nil
}

func contentType(header string) string {
	if header == "" {
		return "text/plain"
	}
	return strings.TrimSpace(strings.SplitN(header, ";", 2)[0])
}

func isJSONContentType(ct string) bool {
	return ct == "application/json" || (strings.HasPrefix(ct, "application/") && strings.HasSuffix(ct, "+json"))
}

func firstResult(expr jp.Expr, data interface{}) (interface{}, bool) {
	results := expr.Get(data)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}
