package matching

import "github.com/pact-foundation/pact-mock-server/pkg/pact"

// exactApplies reports whether selector attaches exactly at target: every
// segment matches structurally (as applies does) and the two paths have the
// same length. A rule at "$.body.items[*]" applies at the node
// "$.body.items[3]" but not at "$.body.items[3].id".
func exactApplies(selector, target Path) bool {
	return len(selector.Segments) == len(target.Segments) && applies(selector, target)
}

// candidateRule pairs a rule with bookkeeping needed to rank it against
// other rules that apply at the same point.
type candidateRule struct {
	rule  pact.Rule
	score []int
	index int
}

// bestRule returns the most specific rule in rs that applies exactly at
// target, per spec.md §4.2: score vectors compared lexicographically,
// longest selector wins ties, most recently inserted rule wins remaining
// ties.
func bestRule(rs pact.RuleSet, target Path) (pact.Rule, bool) {
	rule, _, ok := bestRuleWithSelector(rs, target)
	return rule, ok
}

// bestRuleWithSelector is bestRule, additionally returning the winning
// rule's own selector string. Mismatches reported against a rule-governed
// node are located at the rule's selector (e.g. "$.body[*]"), not the
// concrete tree position that happened to trigger it, so that distinct
// actual elements failing the same wildcard rule are reported once.
func bestRuleWithSelector(rs pact.RuleSet, target Path) (pact.Rule, string, bool) {
	var best *candidateRule
	var bestPath Path
	var bestPathStr string
	rs.Range(func(path string, rule pact.Rule) bool {
		selector, err := ParsePath(path)
		if err != nil || !exactApplies(selector, target) {
			return true
		}
		cand := candidateRule{rule: rule, score: selector.specificity(), index: rs.Index(path)}
		if best == nil || rankHigher(cand, selector, *best, bestPath) {
			c := cand
			best = &c
			bestPath = selector
			bestPathStr = path
		}
		return true
	})
	if best == nil {
		return pact.Rule{}, "", false
	}
	return best.rule, bestPathStr, true
}

// rankHigher reports whether a (with its selector path pa) outranks b (with
// selector path pb) under spec.md §4.2's tie-break chain.
func rankHigher(a candidateRule, pa Path, b candidateRule, pb Path) bool {
	for i := 0; i < len(a.score) && i < len(b.score); i++ {
		if a.score[i] != b.score[i] {
			return a.score[i] > b.score[i]
		}
	}
	if len(a.score) != len(b.score) {
		return len(a.score) > len(b.score)
	}
	return a.index > b.index
}

// rulesUnderPrefix reports whether rs has at least one rule whose selector
// is exactly prefix or a descendant of it; used to decide whether a
// subtree needs rule-aware recursion at all.
func rulesUnderPrefix(rs pact.RuleSet, prefix Path) bool {
	found := false
	rs.Range(func(path string, _ pact.Rule) bool {
		selector, err := ParsePath(path)
		if err != nil {
			return true
		}
		if len(selector.Segments) >= len(prefix.Segments) && applies(prefix, selector) {
			found = true
			return false
		}
		return true
	})
	return found
}
