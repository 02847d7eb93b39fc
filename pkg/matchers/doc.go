// Package matchers is the pattern/builder API consumer test code uses to
// construct a PactDocument whose matching rules describe how actual values
// should be validated, not just what example to emit (spec.md §4.5, §9).
//
// A Pattern is a value tree: every node knows the concrete example value it
// contributes to the pact, and how to append the matching rules it implies
// to a pact.RuleSet at a caller-supplied path prefix. Composite patterns
// (Object, List) recurse into their children with extended paths, and the
// wrappers LikeType and LikeArray recurse into their inner pattern; leaf
// patterns (Literal, Regex) and the convenience matchers built on top of
// them terminate the recursion.
package matchers
