// Package matching implements the pact matching engine: comparing an
// actual HTTP request/response against an expected one, honoring the tree
// of matching rules attached to JSONPath-like selectors, and producing a
// structured mismatch report. It also ranks candidate interactions for the
// mock server's dispatcher.
package matching
