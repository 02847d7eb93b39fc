package mockserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpguts"

	"github.com/pact-foundation/pact-mock-server/internal/matching"
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// defaultMaxBodyBytes is the inbound body size ceiling applied when a
// Server is not configured with an explicit one (spec.md §4.3: "≥ 8 MiB
// recommended").
const defaultMaxBodyBytes = 8 << 20

type handler struct {
	doc     *pact.PactDocument
	report  *VerificationReport
	log     *slog.Logger
	maxBody int64
}

func newHandler(doc *pact.PactDocument, log *slog.Logger, maxBody int64) *handler {
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &handler{
		doc:     doc,
		report:  newVerificationReport(len(doc.Interactions)),
		log:     log,
		maxBody: maxBody,
	}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !inboundHeadersValid(r.Header) {
		h.log.Warn("rejecting request with invalid header encoding", "path", r.URL.Path)
		http.Error(w, "Found an invalid header encoding", http.StatusBadRequest)
		return
	}

	body, err := readBodyLimited(r, h.maxBody)
	if err != nil {
		h.log.Error("failed to read request body", "error", err)
		http.Error(w, "Could not process request body", http.StatusInternalServerError)
		return
	}

	actual := toPactRequest(r, body)
	result := matching.Dispatch(h.doc.Interactions, actual)
	h.report.record(actual, result)

	switch result.Outcome {
	case matching.Match:
		h.writeMatched(w, h.doc.Interactions[result.InteractionIndex].Response)
	case matching.PartialMismatch:
		h.writePartialMismatch(w, result.Mismatches)
	case matching.NotFound:
		h.log.Warn("no matching interaction", "method", actual.Method, "path", actual.Path)
		http.Error(w, "No matching interaction", http.StatusInternalServerError)
	}
}

// Report returns the accumulated VerificationReport for this handler's
// session.
func (h *handler) Report() *VerificationReport {
	return h.report
}

func inboundHeadersValid(header http.Header) bool {
	for name, values := range header {
		if !httpguts.ValidHeaderFieldName(name) {
			return false
		}
		for _, v := range values {
			if !httpguts.ValidHeaderFieldValue(v) {
				return false
			}
		}
	}
	return true
}

func readBodyLimited(r *http.Request, max int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	limited := http.MaxBytesReader(nil, r.Body, max)
	return io.ReadAll(limited)
}

func toPactRequest(r *http.Request, body []byte) pact.Request {
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	ct := headers["Content-Type"]
	var optBody pact.OptionalBody
	switch {
	case len(body) == 0 && r.ContentLength == 0 && r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch:
		optBody = pact.Missing()
	case len(body) == 0:
		optBody = pact.Empty()
	default:
		optBody = pact.Present(body, ct)
	}

	return pact.Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   parseQueryValues(r.URL.Query()),
		Headers: headers,
		Body:    optBody,
	}
}

func parseQueryValues(v url.Values) map[string][]string {
	if len(v) == 0 {
		return nil
	}
	out := make(map[string][]string, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func (h *handler) writeMatched(w http.ResponseWriter, resp pact.Response) {
	headerWriter := w.Header()
	for name, value := range resp.Headers {
		if !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
			http.Error(w, "Could not set response header", http.StatusInternalServerError)
			return
		}
		headerWriter.Set(name, value)
	}
	headerWriter.Set("Access-Control-Allow-Origin", "*")

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if resp.Body.IsPresent() {
		_, _ = w.Write(resp.Body.Bytes)
	}
}

func (h *handler) writePartialMismatch(w http.ResponseWriter, mismatches []matching.Mismatch) {
	type wireMismatch struct {
		Kind    string `json:"kind"`
		Path    string `json:"path"`
		Message string `json:"message"`
	}
	out := make([]wireMismatch, len(mismatches))
	for i, m := range mismatches {
		out[i] = wireMismatch{Kind: m.Kind.String(), Path: m.Path, Message: m.Message}
	}
	payload, err := json.Marshal(struct {
		Mismatches []wireMismatch `json:"mismatches"`
	}{out})
	if err != nil {
		http.Error(w, "Could not process request body", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(payload)
}
