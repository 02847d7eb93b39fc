package serialize

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pact-foundation/pact-mock-server/internal/matching"
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// wireRule is the on-disk shape of a single matching rule object
// (spec.md §3/§6.1).
type wireRule struct {
	Match string `json:"match,omitempty"`
	Regex string `json:"regex,omitempty"`
	Min   string `json:"min,omitempty"`
	Max   string `json:"max,omitempty"`
}

func ruleToWire(r pact.Rule) wireRule {
	w := wireRule{Match: string(r.Match), Regex: r.Regex}
	if r.Min != nil {
		w.Min = strconv.Itoa(*r.Min)
	}
	if r.Max != nil {
		w.Max = strconv.Itoa(*r.Max)
	}
	return w
}

func ruleFromWire(w wireRule) pact.Rule {
	r := pact.Rule{Match: pact.MatchKind(w.Match), Regex: w.Regex}
	if w.Min != "" {
		if n, err := strconv.Atoi(w.Min); err == nil {
			r.Min = pact.IntPtr(n)
		}
	}
	if w.Max != "" {
		if n, err := strconv.Atoi(w.Max); err == nil {
			r.Max = pact.IntPtr(n)
		}
	}
	return r
}

// encodeRulesFlat implements the V1.1/V2 "matchingRules" shape: a flat map
// from absolute path expression to rule object (spec.md §4.1 "flatten on
// write").
func encodeRulesFlat(rs pact.RuleSet) json.RawMessage {
	if rs.IsEmpty() {
		return nil
	}
	flat := make(map[string]wireRule, rs.Len())
	rs.Range(func(path string, rule pact.Rule) bool {
		flat[path] = ruleToWire(rule)
		return true
	})
	out, _ := json.Marshal(flat)
	return out
}

// encodeRulesCategorical implements the V3 nested-by-category shape
// (spec.md §3 "V3 stores a nested shape with categories").
func encodeRulesCategorical(rs pact.RuleSet) json.RawMessage {
	if rs.IsEmpty() {
		return nil
	}
	grouped := make(map[pact.Category]map[string]wireRule)
	rs.Range(func(path string, rule pact.Rule) bool {
		cat, rel := splitCategoryPath(path)
		if grouped[cat] == nil {
			grouped[cat] = make(map[string]wireRule)
		}
		grouped[cat][rel] = ruleToWire(rule)
		return true
	})
	out, _ := json.Marshal(grouped)
	return out
}

// decodeRules parses a "matchingRules" field in either shape. V3 documents
// use the nested-by-category object; V2/V1.1 use the flat path->rule map.
// Legacy V2 input whose keys lack a "$." prefix is rewritten to the
// canonical categorical form (spec.md §4.1).
func decodeRules(raw json.RawMessage, version pact.SpecVersion) (pact.RuleSet, error) {
	rs := pact.NewRuleSet()
	if len(raw) == 0 {
		return rs, nil
	}

	if version == pact.V3 {
		var nested map[string]map[string]wireRule
		if err := json.Unmarshal(raw, &nested); err != nil {
			return rs, err
		}
		for catName, rules := range nested {
			cat := pact.Category(catName)
			for rel, w := range rules {
				rs.Set(joinCategoryPath(cat, rel), ruleFromWire(w))
			}
		}
		return rs, nil
	}

	var flat map[string]wireRule
	if err := json.Unmarshal(raw, &flat); err != nil {
		return rs, err
	}
	for path, w := range flat {
		rs.Set(canonicalizeLegacyPath(path), ruleFromWire(w))
	}
	return rs, nil
}

// splitCategoryPath splits an absolute path like "$.body.items[*].id" into
// its category ("body") and the path relative to that category ("$.items[*].id").
func splitCategoryPath(path string) (pact.Category, string) {
	p, err := matching.ParsePath(path)
	if err != nil || len(p.Segments) < 2 || p.Segments[1].Kind != matching.SegField {
		return pact.CategoryBody, path
	}
	var cat pact.Category
	switch p.Segments[1].Name {
	case "headers":
		cat = pact.CategoryHeaders
	case "path":
		cat = pact.CategoryPath
	case "query":
		cat = pact.CategoryQuery
	default:
		cat = pact.CategoryBody
	}
	rest := matching.Path{Segments: append([]matching.Segment{{Kind: matching.SegRoot}}, p.Segments[2:]...)}
	return cat, rest.String()
}

// joinCategoryPath is splitCategoryPath's inverse.
func joinCategoryPath(cat pact.Category, rel string) string {
	p, err := matching.ParsePath(rel)
	if err != nil {
		p = matching.MustParsePath("$")
	}
	segs := []matching.Segment{{Kind: matching.SegRoot}, {Kind: matching.SegField, Name: string(cat)}}
	if len(p.Segments) > 1 {
		segs = append(segs, p.Segments[1:]...)
	}
	return matching.Path{Segments: segs}.String()
}

// encodeGenerators implements the V3 "generators" field: nested by
// category, same shape as the matchingRules categorical form, but the rule
// body is kept as opaque JSON since this module never interprets generators
// (pkg/pact/generators.go). V1.1/V2 documents never carry generators.
func encodeGenerators(g pact.GeneratorSet, version pact.SpecVersion) json.RawMessage {
	if version != pact.V3 || g.IsEmpty() {
		return nil
	}
	out, _ := json.Marshal(g)
	return out
}

// decodeGenerators parses a V3 "generators" field. Earlier spec versions
// have no such field; raw is empty and the result is an empty GeneratorSet.
func decodeGenerators(raw json.RawMessage) (pact.GeneratorSet, error) {
	if len(raw) == 0 {
		return pact.GeneratorSet{}, nil
	}
	var g pact.GeneratorSet
	if err := json.Unmarshal(raw, &g); err != nil {
		return pact.GeneratorSet{}, err
	}
	return g, nil
}

// canonicalizeLegacyPath rewrites a pre-"$."-prefix V2 rule path (an old
// hand-authored format, e.g. "body.items" or bare "Content-Type") to the
// canonical categorical form.
func canonicalizeLegacyPath(path string) string {
	if strings.HasPrefix(path, "$") {
		return path
	}
	if strings.HasPrefix(path, "body.") || path == "body" {
		return "$." + path
	}
	if strings.HasPrefix(path, "header") {
		return "$.headers" + strings.TrimPrefix(strings.TrimPrefix(path, "headers"), "header")
	}
	if path == "path" {
		return "$.path"
	}
	if strings.HasPrefix(path, "query.") || path == "query" {
		return "$." + path
	}
	// Bare header name with no prefix at all, the oldest legacy shape.
	return matching.AppendField("$.headers", path)
}
