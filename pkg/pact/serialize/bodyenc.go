package serialize

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// contentTypeOf looks up "Content-Type" case-insensitively in headers and
// returns its base type, stripping any parameters.
func contentTypeOf(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, "Content-Type") {
			return strings.TrimSpace(strings.SplitN(v, ";", 2)[0])
		}
	}
	return ""
}

func isJSONBodyContentType(ct string) bool {
	return ct == "application/json" || (strings.HasPrefix(ct, "application/") && strings.HasSuffix(ct, "+json"))
}

func looksLikeJSONValue(raw []byte) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && (t[0] == '{' || t[0] == '[')
}

// decodeBody implements spec.md §4.1's body-encoding rule in reverse: a
// wire value under a JSON content type is the parsed JSON itself (kept as
// raw bytes, never canonically re-encoded); otherwise it is a JSON string
// holding the raw bytes.
func decodeBody(raw json.RawMessage, present bool, ct string) (pact.OptionalBody, error) {
	if !present {
		return pact.Missing(), nil
	}
	trimmed := bytes.TrimSpace(raw)
	if string(trimmed) == "null" {
		return pact.Null(), nil
	}

	if isJSONBodyContentType(ct) || (ct == "" && looksLikeJSONValue(raw)) {
		return pact.Present(append([]byte(nil), trimmed...), ct), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		// Not a JSON string either; fall back to the literal bytes.
		return pact.Present(append([]byte(nil), trimmed...), ct), nil
	}
	return pact.Present([]byte(s), ct), nil
}

// encodeBody is decodeBody's inverse. Non-JSON bodies are UTF-8 decoded
// with replacement (golang.org/x/text/encoding/unicode) before being
// wrapped in a JSON string, so that a body containing invalid UTF-8 still
// serializes instead of failing the whole document.
func encodeBody(b pact.OptionalBody) (raw json.RawMessage, present bool, err error) {
	switch {
	case b.IsMissing():
		return nil, false, nil
	case b.IsNull():
		return json.RawMessage("null"), true, nil
	case b.IsEmpty():
		if isJSONBodyContentType(b.ContentType) {
			return json.RawMessage("{}"), true, nil
		}
		return json.RawMessage(`""`), true, nil
	}

	if isJSONBodyContentType(b.ContentType) && json.Valid(b.Bytes) {
		return json.RawMessage(b.Bytes), true, nil
	}

	s, decErr := decodeUTF8Replacing(b.Bytes)
	if decErr != nil {
		s = string(b.Bytes)
	}
	encoded, err := json.Marshal(s)
	if err != nil {
		return nil, false, err
	}
	return encoded, true, nil
}

func decodeUTF8Replacing(b []byte) (string, error) {
	s, _, err := transform.String(unicode.UTF8.NewDecoder(), string(b))
	return s, err
}
