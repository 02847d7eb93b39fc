package pact

// BodyState distinguishes the reasons a body might be empty, so that a
// field absent from JSON ("Missing") can be told apart from a field present
// but holding zero bytes ("Empty") or an explicit JSON null ("Null").
type BodyState int

const (
	// BodyMissing means the body field was absent entirely.
	BodyMissing BodyState = iota
	// BodyEmpty means the body field was present but held zero bytes.
	BodyEmpty
	// BodyNull means the body field held an explicit JSON null.
	BodyNull
	// BodyPresent means the body field held concrete bytes.
	BodyPresent
)

// OptionalBody is the tagged Missing/Empty/Null/Present body variant from
// spec.md §3. Present preserves the exact byte sequence handed to it; JSON
// bodies are re-parsed lazily by the matching engine and are never
// canonically re-encoded on read.
type OptionalBody struct {
	State   BodyState
	Bytes   []byte
	// ContentType is the body's declared content type, if any (from the
	// Content-Type header on the side this body belongs to). Empty means
	// unknown/unspecified.
	ContentType string
}

// Missing returns the Missing variant.
func Missing() OptionalBody { return OptionalBody{State: BodyMissing} }

// Empty returns the Empty variant.
func Empty() OptionalBody { return OptionalBody{State: BodyEmpty} }

// Null returns the Null variant.
func Null() OptionalBody { return OptionalBody{State: BodyNull} }

// Present returns the Present variant wrapping the given bytes verbatim.
func Present(b []byte, contentType string) OptionalBody {
	if len(b) == 0 {
		return OptionalBody{State: BodyEmpty, ContentType: contentType}
	}
	return OptionalBody{State: BodyPresent, Bytes: b, ContentType: contentType}
}

// IsPresent reports whether the body holds concrete bytes.
func (b OptionalBody) IsPresent() bool { return b.State == BodyPresent }

// IsMissing reports whether the body field was absent.
func (b OptionalBody) IsMissing() bool { return b.State == BodyMissing }

// IsEmpty reports whether the body was present but zero-length.
func (b OptionalBody) IsEmpty() bool { return b.State == BodyEmpty }

// IsNull reports whether the body was an explicit JSON null.
func (b OptionalBody) IsNull() bool { return b.State == BodyNull }

// String returns the body bytes decoded as a string, or "" for any
// non-Present variant.
func (b OptionalBody) String() string {
	if b.State != BodyPresent {
		return ""
	}
	return string(b.Bytes)
}
