package serialize

import "github.com/pact-foundation/pact-mock-server/pkg/pact"

// detectVersion implements spec.md §4.1's version-detection rule: read
// metadata["pact-specification"]["version"] first, then the legacy
// camelCase metadata["pactSpecification"]["version"], else Unknown.
func detectVersion(metadata map[string]map[string]string) pact.SpecVersion {
	if m, ok := metadata["pact-specification"]; ok {
		if v, ok := m["version"]; ok {
			return pact.ParseSpecVersion(v)
		}
	}
	if m, ok := metadata["pactSpecification"]; ok {
		if v, ok := m["version"]; ok {
			return pact.ParseSpecVersion(v)
		}
	}
	return pact.Unknown
}

// mergeMetadata ensures metadata carries pact-specification.version set to
// version (defaulting to V2 when version is Unknown), preserving any other
// pre-existing keys untouched (spec.md §4.1 "Metadata merge").
func mergeMetadata(metadata map[string]map[string]string, version pact.SpecVersion) map[string]map[string]string {
	out := make(map[string]map[string]string, len(metadata)+1)
	for k, v := range metadata {
		inner := make(map[string]string, len(v))
		for ik, iv := range v {
			inner[ik] = iv
		}
		out[k] = inner
	}
	if version == pact.Unknown {
		version = pact.V2
	}
	out["pact-specification"] = map[string]string{"version": version.String()}
	return out
}
