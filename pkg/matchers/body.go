package matchers

import (
	"encoding/json"
	"fmt"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// JSONBody builds an application/json body and its matching rules from a
// root Pattern, rooted at the conventional "$.body" selector (spec.md
// §4.5's Example() / extract_rules() pair applied at the top level). The
// returned OptionalBody is always Present; a pattern whose example happens
// to be empty (e.g. Literal("")) still yields a Present body, per
// pact.Present's own empty/nonempty distinction.
func JSONBody(p Pattern) (pact.OptionalBody, pact.RuleSet, error) {
	raw, err := json.Marshal(p.Example())
	if err != nil {
		return pact.OptionalBody{}, pact.RuleSet{}, fmt.Errorf("matchers: encoding example: %w", err)
	}
	return pact.Present(raw, "application/json"), RulesFor("$.body", p), nil
}

// PlainTextBody builds a non-JSON body from a Pattern whose Example() is a
// string, and its matching rules (e.g. a Regex pattern applied to "$.body"
// directly, as in spec.md §4.2's "For non-JSON bodies ... unless a regex
// rule applies at $.body").
func PlainTextBody(p Pattern, contentType string) (pact.OptionalBody, pact.RuleSet, error) {
	s, ok := p.Example().(string)
	if !ok {
		return pact.OptionalBody{}, pact.RuleSet{}, fmt.Errorf("matchers: PlainTextBody requires a string example, got %T", p.Example())
	}
	return pact.Present([]byte(s), contentType), RulesFor("$.body", p), nil
}
