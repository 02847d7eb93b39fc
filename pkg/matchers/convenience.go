package matchers

import "time"

// Regex constants for the convenience matchers below. The hex, IPv4 and
// UUID patterns are carried over from the upstream pact-go V1/V2 DSL's
// Term-based matchers
// (other_examples/80739ddf_Abdulsametileri-pact-go__v3-matcher.go). The
// timestamp pattern is written for Go's RE2 syntax (no lookahead or
// backreferences): a calendar date, optionally followed by a time with
// optional fractional seconds and a "Z" or numeric zone offset.
const (
	hexadecimalPattern  = `[0-9a-fA-F]+`
	ipv4AddressPattern  = `(\d{1,3}\.)+\d{1,3}`
	uuidPattern         = `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`
	isoTimestampPattern = `^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])([T\s]([01]\d|2[0-3]):[0-5]\d(:[0-5]\d([\.,]\d+)?)?([zZ]|[\+-]([01]\d|2[0-3]):?[0-5]\d)?)?$`
)

// timestampExample is a fixed sample instant used as the Timestamp matcher's
// example, avoiding time.Now() so pact output stays deterministic across
// test runs — the same reason the upstream Go and Rust matchers both seed
// Timestamp with a fixed instant rather than the current time.
var timestampExample = time.Date(2000, 2, 1, 12, 30, 0, 0, time.UTC)

// UUID matches strings that are, in their entirety, a lowercase
// 8-4-4-4-12 hex UUID, seeded with a fixed example UUID.
func UUID() Pattern {
	return MustRegex(uuidPattern, "fc763eba-0905-41c5-a27f-3934ab26786c")
}

// HexValue matches hexadecimal-encoded strings.
func HexValue() Pattern {
	return MustRegex(hexadecimalPattern, "3F")
}

// IPv4Address matches dotted-quad IPv4 addresses.
func IPv4Address() Pattern {
	return MustRegex(ipv4AddressPattern, "127.0.0.1")
}

// Integer matches any value of the same JSON kind as example (a LikeType
// alias), mirroring the upstream DSL's Identifier/Integer matcher.
func Integer(example int) Pattern {
	return LikeType(Literal(example))
}

// Decimal matches any value of the same JSON kind as example (a LikeType
// alias), mirroring the upstream DSL's Decimal matcher.
func Decimal(example float64) Pattern {
	return LikeType(Literal(example))
}

// Timestamp matches an ISO-8601 timestamp string, seeded with a fixed
// example instant.
func Timestamp() Pattern {
	return MustRegex(isoTimestampPattern, timestampExample.Format(time.RFC3339))
}
