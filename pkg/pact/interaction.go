package pact

// Interaction is one expected request/response pair, optionally scoped to a
// provider state. Uniqueness of Description within a PactDocument is not
// enforced (spec.md §3) but duplicate descriptions are a quality signal a
// linter built on this package could flag.
type Interaction struct {
	Description   string
	ProviderState string // optional; empty means unset
	Request       Request
	Response      Response
}

func (i Interaction) clone() Interaction {
	out := i
	out.Request = i.Request.clone()
	out.Response = i.Response.clone()
	return out
}
