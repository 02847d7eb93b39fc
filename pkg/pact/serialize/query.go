package serialize

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// encodeQuery implements spec.md §4.1's query-encoding rule: V1 writes a
// raw URL-encoded string, V2+ write a parsed {key: [values]} object.
func encodeQuery(q map[string][]string, version pact.SpecVersion) (json.RawMessage, error) {
	if q == nil {
		return nil, nil
	}

	if version == pact.V1 {
		keys := make([]string, 0, len(q))
		for k := range q {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			for _, v := range q[k] {
				parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(v))
			}
		}
		return json.Marshal(strings.Join(parts, "&"))
	}

	return json.Marshal(q)
}

// decodeQuery detects which form (V1 string or V2 object) raw is in and
// parses it accordingly, preserving per-key value order.
func decodeQuery(raw json.RawMessage) (map[string][]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseQueryString(s)
	}

	var obj map[string][]string
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj, nil
	}

	// Tolerate a single-string-value form ({"key": "value"}) seen in older
	// hand-written pact files.
	var loose map[string]interface{}
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, fmt.Errorf("query field is neither a string nor an object: %w", err)
	}
	out := make(map[string][]string, len(loose))
	for k, v := range loose {
		switch val := v.(type) {
		case string:
			out[k] = []string{val}
		case []interface{}:
			vals := make([]string, 0, len(val))
			for _, item := range val {
				vals = append(vals, fmt.Sprintf("%v", item))
			}
			out[k] = vals
		default:
			out[k] = []string{fmt.Sprintf("%v", val)}
		}
	}
	return out, nil
}

// parseQueryString parses a URL-encoded query string while preserving the
// order values for a repeated key were encountered in, which
// net/url.ParseQuery (backed by an unordered map) cannot guarantee.
func parseQueryString(s string) (map[string][]string, error) {
	if s == "" {
		return map[string][]string{}, nil
	}
	out := make(map[string][]string)
	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}
		var key, val string
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key, val = pair[:i], pair[i+1:]
		} else {
			key = pair
		}
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		v, err := url.QueryUnescape(val)
		if err != nil {
			return nil, err
		}
		out[k] = append(out[k], v)
	}
	return out, nil
}
