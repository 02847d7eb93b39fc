package matching

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"mime"
	"strings"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// compareBody implements spec.md §4.2's body semantics: content-type check
// first, then structural JSON recursion or plain byte equality.
func compareBody(expected, actual pact.OptionalBody, rules pact.RuleSet) []Mismatch {
	if expected.IsMissing() {
		return nil
	}

	expCT := baseContentType(expected.ContentType)
	actCT := baseContentType(actual.ContentType)
	if expCT != "" && actCT != "" && expCT != actCT {
		return []Mismatch{newMismatch(BodyTypeMismatch, "$.body", expCT, actCT,
			"Expected body to have content type %q but was %q", expCT, actCT)}
	}

	if isJSONContentType(expCT) {
		expVal, expErr := decodeJSONBody(expected)
		actVal, actErr := decodeJSONBody(actual)
		if expErr != nil {
			return nil // not our place to fail on a malformed expected document
		}
		if actErr != nil {
			return []Mismatch{newMismatch(BodyMismatch, "$.body", expected.String(), actual.String(),
				"Actual body is not valid JSON: %s", actErr)}
		}
		return compareNode(MustParsePath("$.body"), expVal, actVal, rules, pact.MatchEquality)
	}

	if rule, ok := bestRule(rules, MustParsePath("$.body")); ok && rule.Match == pact.MatchRegex {
		if regexMatches(rule.Regex, string(actual.Bytes)) {
			return nil
		}
		return []Mismatch{newMismatch(BodyMismatch, "$.body", expected.String(), actual.String(),
			"Expected body to match %q", rule.Regex)}
	}

	if !bytes.Equal(expected.Bytes, actual.Bytes) {
		return []Mismatch{newMismatch(BodyMismatch, "$.body", expected.String(), actual.String(),
			"Expected body %q but was %q", expected.String(), actual.String())}
	}
	return nil
}

func decodeJSONBody(b pact.OptionalBody) (interface{}, error) {
	if !b.IsPresent() {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal(b.Bytes, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func baseContentType(ct string) string {
	if ct == "" {
		return ""
	}
	base, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.TrimSpace(strings.SplitN(ct, ";", 2)[0])
	}
	return base
}

// isJSONContentType reports whether ct names a JSON media type. An absent
// content type is NOT treated as JSON — matching pkg/pact/serialize's own
// isJSONBodyContentType, which makes the same call on write/read — so an
// untyped, non-JSON body (e.g. "Hello" vs "Bye" with no Content-Type) falls
// through to plain byte equality instead of silently short-circuiting on a
// JSON decode error.
func isJSONContentType(ct string) bool {
	return ct == "application/json" || (strings.HasPrefix(ct, "application/") && strings.HasSuffix(ct, "+json"))
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return "unknown"
	}
}

// compareNode recursively compares expected and actual JSON values at path,
// honoring the most specific rule found at each node and falling back to
// ambientDefault (the match kind inherited from the nearest enclosing rule,
// or equality at the root — spec.md §4.2). Mismatches are located at the
// winning rule's own selector (e.g. "$.body[*]") rather than the concrete
// tree position, so several actual elements failing the same wildcard rule
// are attributed to one location.
func compareNode(path Path, expected, actual interface{}, rules pact.RuleSet, ambientDefault pact.MatchKind) []Mismatch {
	rule, selectorPath, hasRule := bestRuleWithSelector(rules, path)
	kind := ambientDefault
	reportedPath := path.String()
	if hasRule {
		kind = rule.Match
		reportedPath = selectorPath
	}

	if expArr, ok := expected.([]interface{}); ok {
		return compareArray(path, reportedPath, expArr, actual, rules, kind, rule, hasRule)
	}
	if expObj, ok := expected.(map[string]interface{}); ok {
		return compareObject(path, reportedPath, expObj, actual, rules, kind)
	}
	return compareScalar(reportedPath, expected, actual, kind, rule, hasRule)
}

func compareArray(path Path, reportedPath string, expArr []interface{}, actual interface{}, rules pact.RuleSet, kind pact.MatchKind, rule pact.Rule, hasRule bool) []Mismatch {
	actArr, ok := actual.([]interface{})
	if !ok {
		return []Mismatch{newMismatch(BodyMismatch, reportedPath, "array", jsonKind(actual),
			"Expected an array at %s but found %s", reportedPath, jsonKind(actual))}
	}

	if hasRule && (rule.Min != nil || rule.Max != nil) {
		var mismatches []Mismatch
		if rule.Min != nil && len(actArr) < *rule.Min {
			mismatches = append(mismatches, newMismatch(BodyMismatch, reportedPath, fmt.Sprintf("at least %d element(s)", *rule.Min), fmt.Sprintf("%d element(s)", len(actArr)),
				"Expected %s to have at least %d element(s) but had %d", reportedPath, *rule.Min, len(actArr)))
		}
		if rule.Max != nil && len(actArr) > *rule.Max {
			mismatches = append(mismatches, newMismatch(BodyMismatch, reportedPath, fmt.Sprintf("at most %d element(s)", *rule.Max), fmt.Sprintf("%d element(s)", len(actArr)),
				"Expected %s to have at most %d element(s) but had %d", reportedPath, *rule.Max, len(actArr)))
		}
		if len(expArr) == 0 {
			return mismatches
		}
		template := expArr[0]
		var elementMismatches []Mismatch
		for i, actVal := range actArr {
			childPath := Path{Segments: append(append([]Segment{}, path.Segments...), Segment{Kind: SegIndex, Index: i})}
			elementMismatches = append(elementMismatches, compareNode(childPath, template, actVal, rules, pact.MatchType)...)
		}
		mismatches = append(mismatches, dedupeMismatches(elementMismatches)...)
		return mismatches
	}

	if len(expArr) != len(actArr) {
		return []Mismatch{newMismatch(BodyMismatch, reportedPath, fmt.Sprintf("%d element(s)", len(expArr)), fmt.Sprintf("%d element(s)", len(actArr)),
			"Expected %s to have %d element(s) but had %d", reportedPath, len(expArr), len(actArr))}
	}

	var mismatches []Mismatch
	for i, expVal := range expArr {
		childPath := Path{Segments: append(append([]Segment{}, path.Segments...), Segment{Kind: SegIndex, Index: i})}
		mismatches = append(mismatches, compareNode(childPath, expVal, actArr[i], rules, kind)...)
	}
	return mismatches
}

func compareObject(path Path, reportedPath string, expObj map[string]interface{}, actual interface{}, rules pact.RuleSet, kind pact.MatchKind) []Mismatch {
	actObj, ok := actual.(map[string]interface{})
	if !ok {
		return []Mismatch{newMismatch(BodyMismatch, reportedPath, "object", jsonKind(actual),
			"Expected an object at %s but found %s", reportedPath, jsonKind(actual))}
	}

	var mismatches []Mismatch
	for key, expVal := range expObj {
		childPath := Path{Segments: append(append([]Segment{}, path.Segments...), Segment{Kind: SegField, Name: key})}
		actVal, present := actObj[key]
		if !present {
			mismatches = append(mismatches, newMismatch(BodyMismatch, childPath.String(), fmt.Sprintf("%v", expVal), "",
				"Expected %s to be present", childPath.String()))
			continue
		}
		mismatches = append(mismatches, compareNode(childPath, expVal, actVal, rules, kind)...)
	}

	if kind == pact.MatchEquality {
		for key := range actObj {
			if _, present := expObj[key]; !present {
				childPath := Path{Segments: append(append([]Segment{}, path.Segments...), Segment{Kind: SegField, Name: key})}
				mismatches = append(mismatches, newMismatch(BodyMismatch, childPath.String(), "", fmt.Sprintf("%v", actObj[key]),
					"Unexpected key %s", childPath.String()))
			}
		}
	}
	return mismatches
}

// dedupeMismatches keeps the first mismatch seen for each distinct
// (Kind, Path) pair. Used when a single wildcard rule governs many
// concrete positions (e.g. "$.body[*]" across every array element): spec.md
// §8 E5 expects one reported BodyMismatch, not one per offending element.
func dedupeMismatches(ms []Mismatch) []Mismatch {
	type key struct {
		kind Kind
		path string
	}
	seen := make(map[key]struct{}, len(ms))
	out := make([]Mismatch, 0, len(ms))
	for _, m := range ms {
		k := key{m.Kind, m.Path}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, m)
	}
	return out
}

func compareScalar(reportedPath string, expected, actual interface{}, kind pact.MatchKind, rule pact.Rule, hasRule bool) []Mismatch {
	switch kind {
	case pact.MatchType:
		if jsonKind(expected) != jsonKind(actual) {
			return []Mismatch{newMismatch(BodyMismatch, reportedPath, jsonKind(expected), jsonKind(actual),
				"Expected %s to be of type %s but was %s", reportedPath, jsonKind(expected), jsonKind(actual))}
		}
		return nil
	case pact.MatchRegex:
		s, ok := actual.(string)
		if !ok || !hasRule {
			return []Mismatch{newMismatch(BodyMismatch, reportedPath, "string", jsonKind(actual),
				"Expected %s to be a string matching %q", reportedPath, rule.Regex)}
		}
		if regexMatches(rule.Regex, s) {
			return nil
		}
		return []Mismatch{newMismatch(BodyMismatch, reportedPath, rule.Regex, s,
			"Expected %s to match %q but was %q", reportedPath, rule.Regex, s)}
	case pact.MatchInteger:
		n, ok := actual.(float64)
		if !ok || n != math.Trunc(n) {
			return []Mismatch{newMismatch(BodyMismatch, reportedPath, "integer", jsonKind(actual),
				"Expected %s to be an integer", reportedPath)}
		}
		return nil
	case pact.MatchDecimal:
		if _, ok := actual.(float64); !ok {
			return []Mismatch{newMismatch(BodyMismatch, reportedPath, "decimal", jsonKind(actual),
				"Expected %s to be a decimal number", reportedPath)}
		}
		return nil
	case pact.MatchNull:
		if actual != nil {
			return []Mismatch{newMismatch(BodyMismatch, reportedPath, "null", jsonKind(actual),
				"Expected %s to be null", reportedPath)}
		}
		return nil
	case pact.MatchInclude:
		expStr, _ := expected.(string)
		actStr, ok := actual.(string)
		if !ok || !strings.Contains(actStr, expStr) {
			return []Mismatch{newMismatch(BodyMismatch, reportedPath, expStr, fmt.Sprintf("%v", actual),
				"Expected %s to include %q", reportedPath, expStr)}
		}
		return nil
	default: // equality
		if !jsonEqual(expected, actual) {
			return []Mismatch{newMismatch(BodyMismatch, reportedPath, fmt.Sprintf("%v", expected), fmt.Sprintf("%v", actual),
				"Expected %s to be %v but was %v", reportedPath, expected, actual)}
		}
		return nil
	}
}

func jsonEqual(a, b interface{}) bool {
	ab, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	return bytes.Equal(ab, bb)
}
