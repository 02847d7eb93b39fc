package pact

// SpecVersion identifies the pact specification revision a document was
// read from, or should be written with.
type SpecVersion int

const (
	// Unknown means the metadata did not carry a recognizable version marker.
	Unknown SpecVersion = iota
	V1
	V1_1
	V2
	V3
)

// String renders the on-disk version string for a SpecVersion, e.g. "2.0.0".
func (v SpecVersion) String() string {
	switch v {
	case V1:
		return "1.0.0"
	case V1_1:
		return "1.1.0"
	case V2:
		return "2.0.0"
	case V3:
		return "3.0.0"
	default:
		return ""
	}
}

// ParseSpecVersion maps an on-disk version string to a SpecVersion. Unknown
// or unrecognized values degrade to Unknown, never an error: see
// serialize.ParseError kind UnknownSpec.
func ParseSpecVersion(s string) SpecVersion {
	switch s {
	case "1.0.0":
		return V1
	case "1.1.0":
		return V1_1
	case "2.0.0":
		return V2
	case "3.0.0":
		return V3
	default:
		return Unknown
	}
}

// Consumer identifies the consuming party of a pact.
type Consumer struct {
	Name string `json:"name" yaml:"name"`
}

// Provider identifies the providing party of a pact.
type Provider struct {
	Name string `json:"name" yaml:"name"`
}

// PactDocument is the hub data structure of the whole module: every other
// component either produces, consumes, or matches against it. It is
// immutable once handed to a mock server or verifier.
type PactDocument struct {
	Consumer     Consumer
	Provider     Provider
	Interactions []Interaction

	// Metadata is the raw agent/spec-version metadata block, a mapping from
	// string to mapping from string to string. Readers tolerate its absence;
	// writers always restate pact-specification.version (see serialize.Serialize).
	Metadata map[string]map[string]string

	// SpecificationVersion is derived on read from metadata and restated by
	// the writer. It is never mutated by the matching engine.
	SpecificationVersion SpecVersion
}

// Clone returns a deep-enough copy of the document for handing to a mock
// server: interactions and their rule sets are copied so that a caller
// continuing to build the same document value does not race with a running
// server reading it.
func (d *PactDocument) Clone() *PactDocument {
	if d == nil {
		return nil
	}
	out := &PactDocument{
		Consumer:             d.Consumer,
		Provider:             d.Provider,
		SpecificationVersion: d.SpecificationVersion,
		Interactions:         make([]Interaction, len(d.Interactions)),
	}
	if d.Metadata != nil {
		out.Metadata = make(map[string]map[string]string, len(d.Metadata))
		for k, v := range d.Metadata {
			inner := make(map[string]string, len(v))
			for ik, iv := range v {
				inner[ik] = iv
			}
			out.Metadata[k] = inner
		}
	}
	for i, in := range d.Interactions {
		out.Interactions[i] = in.clone()
	}
	return out
}
