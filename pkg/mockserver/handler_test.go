package mockserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pact-foundation/pact-mock-server/pkg/logging"
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

func greetingDoc() *pact.PactDocument {
	return &pact.PactDocument{
		Consumer: pact.Consumer{Name: "consumer"},
		Provider: pact.Provider{Name: "provider"},
		Interactions: []pact.Interaction{
			{
				Description: "a request for a greeting",
				Request: pact.Request{
					Method: "GET",
					Path:   "/greet",
				},
				Response: pact.Response{
					Status:  200,
					Headers: map[string]string{"Content-Type": "application/json"},
					Body:    pact.Present([]byte(`{"message":"hi"}`), "application/json"),
				},
			},
		},
		SpecificationVersion: pact.V2,
	}
}

func TestHandlerMatchedRequestSetsCorsHeaderAndBody(t *testing.T) {
	h := newHandler(greetingDoc(), logging.Nop(), 0)
	req := httptest.NewRequest(http.MethodGet, "/greet", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"message":"hi"}`, rec.Body.String())
	assert.True(t, h.Report().AllMatched())
}

func TestHandlerNotFoundReturns500WithLiteralBody(t *testing.T) {
	h := newHandler(greetingDoc(), logging.Nop(), 0)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "No matching interaction")
	assert.False(t, h.Report().NoUnexpected())
}

func TestHandlerOversizedBodyReturns500(t *testing.T) {
	h := newHandler(greetingDoc(), logging.Nop(), 8)
	req := httptest.NewRequest(http.MethodPost, "/greet", strings.NewReader("this body is far too long"))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not process request body")
}

func TestHandlerInvalidInboundHeaderReturns400(t *testing.T) {
	h := newHandler(greetingDoc(), logging.Nop(), 0)
	req := httptest.NewRequest(http.MethodGet, "/greet", nil)
	req.Header["X-Bad"] = []string{"line1\r\nline2"}
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Found an invalid header encoding")
}

func TestHandlerPartialMismatchReturnsJSONBody(t *testing.T) {
	doc := greetingDoc()
	doc.Interactions[0].Request.Headers = map[string]string{"Accept": "application/json"}
	h := newHandler(doc, logging.Nop(), 0)

	req := httptest.NewRequest(http.MethodGet, "/greet", nil)
	req.Header.Set("Accept", "text/plain")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Body.String(), "mismatches")
}
