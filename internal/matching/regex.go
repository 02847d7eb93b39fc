package matching

import (
	"regexp"
	"sync"
)

var regexCache sync.Map // map[string]*regexp.Regexp

// regexMatches reports whether value fully matches pattern, anchoring the
// expression the way the pact matching rules expect: a bare "application/.*"
// is expected to match the whole header value, not merely a substring of it.
func regexMatches(pattern, value string) bool {
	re, ok := regexCache.Load(pattern)
	if !ok {
		compiled, err := regexp.Compile(anchor(pattern))
		if err != nil {
			return false
		}
		re, _ = regexCache.LoadOrStore(pattern, compiled)
	}
	return re.(*regexp.Regexp).MatchString(value)
}

func anchor(pattern string) string {
	inner := pattern
	if len(inner) > 0 && inner[0] == '^' {
		inner = inner[1:]
	}
	if len(inner) > 0 && inner[len(inner)-1] == '$' {
		inner = inner[:len(inner)-1]
	}
	return "^(?:" + inner + ")$"
}
