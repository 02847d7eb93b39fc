package pact

// Category groups matching rules the way the V3 pact specification does on
// disk. The internal model keeps rules flat and ordered (see RuleSet);
// Category is derived from a rule's path prefix when a V3 serializer needs
// to group them, and reattached when a V3 document is read.
type Category string

const (
	CategoryBody    Category = "body"
	CategoryHeaders Category = "headers"
	CategoryPath    Category = "path"
	CategoryQuery   Category = "query"
)

// MatchKind is the recognized value of a rule's "match" attribute.
type MatchKind string

const (
	MatchType     MatchKind = "type"
	MatchRegex    MatchKind = "regex"
	MatchEquality MatchKind = "equality"
	MatchInclude  MatchKind = "include"
	MatchInteger  MatchKind = "integer"
	MatchDecimal  MatchKind = "decimal"
	MatchNull     MatchKind = "null"
)

// Rule is a single matching-rule object: a mapping from attribute name to
// value, restricted to the attributes spec.md §3 recognizes. Min/Max are
// encoded as decimal strings on disk (per spec.md §3) but kept as *int
// internally; nil means "not set" for that attribute.
type Rule struct {
	Match MatchKind
	Regex string
	Min   *int
	Max   *int
}

// IntPtr is a small helper for constructing Rule.Min/Rule.Max literals.
func IntPtr(n int) *int { return &n }

// RuleSet maps a canonical path expression (e.g. "$.body.items[*].id",
// "$.headers['Content-Type']", "$.path", "$.query.page") to the rule that
// applies at that location. This is the central data structure of the
// matcher (spec.md §3). Insertion order is preserved because spec.md
// §4.2's tie-breaking rule depends on it: "if still tied, the most
// recently inserted rule wins".
type RuleSet struct {
	entries []ruleEntry
	pos     map[string]int
}

type ruleEntry struct {
	Path string
	Rule Rule
}

// NewRuleSet returns an empty, ready-to-use RuleSet.
func NewRuleSet() RuleSet {
	return RuleSet{pos: make(map[string]int)}
}

// Set records the rule that applies at path. Re-setting an existing path
// updates its rule in place without changing its position in insertion
// order; setting a new path appends it, making it "most recently inserted"
// relative to every path already present.
func (rs *RuleSet) Set(path string, rule Rule) {
	if rs.pos == nil {
		rs.pos = make(map[string]int)
	}
	if i, ok := rs.pos[path]; ok {
		rs.entries[i].Rule = rule
		return
	}
	rs.pos[path] = len(rs.entries)
	rs.entries = append(rs.entries, ruleEntry{Path: path, Rule: rule})
}

// Get returns the rule at path and whether one was set.
func (rs RuleSet) Get(path string) (Rule, bool) {
	if rs.pos == nil {
		return Rule{}, false
	}
	i, ok := rs.pos[path]
	if !ok {
		return Rule{}, false
	}
	return rs.entries[i].Rule, true
}

// Len returns the number of distinct paths with a rule attached.
func (rs RuleSet) Len() int { return len(rs.entries) }

// IsEmpty reports whether the RuleSet has no rules.
func (rs RuleSet) IsEmpty() bool { return len(rs.entries) == 0 }

// Range calls fn for every (path, rule) pair in insertion order, stopping
// early if fn returns false.
func (rs RuleSet) Range(fn func(path string, rule Rule) bool) {
	for _, e := range rs.entries {
		if !fn(e.Path, e.Rule) {
			return
		}
	}
}

// Paths returns every path with a rule attached, in insertion order.
func (rs RuleSet) Paths() []string {
	out := make([]string, len(rs.entries))
	for i, e := range rs.entries {
		out[i] = e.Path
	}
	return out
}

// Index returns the insertion-order index of path, or -1 if absent. Used by
// the matching engine to break specificity ties in favor of the most
// recently inserted rule.
func (rs RuleSet) Index(path string) int {
	if rs.pos == nil {
		return -1
	}
	i, ok := rs.pos[path]
	if !ok {
		return -1
	}
	return i
}

// Clone returns an independent copy of the RuleSet.
func (rs RuleSet) Clone() RuleSet {
	if rs.entries == nil {
		return RuleSet{}
	}
	out := RuleSet{
		entries: make([]ruleEntry, len(rs.entries)),
		pos:     make(map[string]int, len(rs.pos)),
	}
	copy(out.entries, rs.entries)
	for k, v := range rs.pos {
		out.pos[k] = v
	}
	return out
}
