// Package serialize implements bit-faithful round-trip JSON (de)serialization
// of a pact.PactDocument across specification revisions V1/V1.1/V2/V3
// (spec.md §4.1 and §6.1).
package serialize
