package matching

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind identifies the kind of a single parsed Path segment.
type SegmentKind int

const (
	SegRoot SegmentKind = iota
	SegField
	SegIndex
	SegWildcardField
	SegWildcardIndex
)

// Segment is one structural step of a parsed selector path: "$", ".name",
// "['name']", "[i]", "[*]", or ".*". Selector paths are parsed once into a
// slice of these and matched structurally, never re-evaluated as a
// general-purpose JSONPath expression over arbitrary data (spec.md §9).
type Segment struct {
	Kind  SegmentKind
	Name  string // set for SegField
	Index int    // set for SegIndex
}

// Path is a fully parsed selector expression, root segment first.
type Path struct {
	Segments []Segment
}

// ParsePath parses a selector expression such as "$.body.items[*].id" or
// "$.headers['Content-Type']" into a structured Path. The grammar supports
// exactly the productions named in spec.md §4.2: "$" root, ".name",
// "['name']", "[i]", "[*]" any index, ".*" any field.
func ParsePath(expr string) (Path, error) {
	if !strings.HasPrefix(expr, "$") {
		return Path{}, fmt.Errorf("matching: path expression %q must start with '$'", expr)
	}
	p := Path{Segments: []Segment{{Kind: SegRoot}}}
	i := 1
	for i < len(expr) {
		switch expr[i] {
		case '.':
			i++
			if i < len(expr) && expr[i] == '*' {
				p.Segments = append(p.Segments, Segment{Kind: SegWildcardField})
				i++
				continue
			}
			start := i
			for i < len(expr) && expr[i] != '.' && expr[i] != '[' {
				i++
			}
			if i == start {
				return Path{}, fmt.Errorf("matching: empty field name in path expression %q", expr)
			}
			p.Segments = append(p.Segments, Segment{Kind: SegField, Name: expr[start:i]})
		case '[':
			end := strings.IndexByte(expr[i:], ']')
			if end == -1 {
				return Path{}, fmt.Errorf("matching: unterminated '[' in path expression %q", expr)
			}
			inner := expr[i+1 : i+end]
			i += end + 1
			switch {
			case inner == "*":
				p.Segments = append(p.Segments, Segment{Kind: SegWildcardIndex})
			case len(inner) >= 2 && (inner[0] == '\'' || inner[0] == '"') && inner[len(inner)-1] == inner[0]:
				p.Segments = append(p.Segments, Segment{Kind: SegField, Name: inner[1 : len(inner)-1]})
			default:
				idx, err := strconv.Atoi(inner)
				if err != nil {
					return Path{}, fmt.Errorf("matching: invalid index %q in path expression %q", inner, expr)
				}
				p.Segments = append(p.Segments, Segment{Kind: SegIndex, Index: idx})
			}
		default:
			return Path{}, fmt.Errorf("matching: unexpected character %q at position %d in path expression %q", expr[i], i, expr)
		}
	}
	return p, nil
}

// MustParsePath panics on a malformed expression. Intended for package-level
// constants and patterns where the expression is a compile-time literal.
func MustParsePath(expr string) Path {
	p, err := ParsePath(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// isPlainIdentifier reports whether name can be written as ".name" without
// bracket-quoting: it must consist only of ASCII letters, digits and
// underscores, so a name such as "Content-Type" is quoted.
func isPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum && c != '_' {
			return false
		}
	}
	return true
}

// String renders the Path back to its canonical selector expression,
// bracket-quoting any field segment that is not a plain identifier (e.g.
// "$.headers['Content-Type']", not "$.headers.Content-Type" — spec.md §9).
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p.Segments {
		switch seg.Kind {
		case SegRoot:
			b.WriteByte('$')
		case SegField:
			if isPlainIdentifier(seg.Name) {
				b.WriteByte('.')
				b.WriteString(seg.Name)
			} else {
				b.WriteString("['")
				b.WriteString(seg.Name)
				b.WriteString("']")
			}
		case SegIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
		case SegWildcardIndex:
			b.WriteString("[*]")
		case SegWildcardField:
			b.WriteString(".*")
		}
	}
	return b.String()
}

// AppendField returns the selector string obtained by appending a field
// segment named name to base (e.g. AppendField("$.headers", "Content-Type")
// == "$.headers['Content-Type']"). Used by the pattern/builder API (spec.md
// §4.5) to construct selector paths without reimplementing quoting rules.
func AppendField(base string, name string) string {
	p := MustParsePath(base)
	p.Segments = append(p.Segments, Segment{Kind: SegField, Name: name})
	return p.String()
}

// AppendIndex returns the selector string obtained by appending a concrete
// index segment to base (e.g. AppendIndex("$.body", 0) == "$.body[0]").
// Used by the pattern/builder API (spec.md §4.5) when a literal array's
// elements are built up from distinct child patterns rather than a single
// repeated LikeArray element.
func AppendIndex(base string, index int) string {
	p := MustParsePath(base)
	p.Segments = append(p.Segments, Segment{Kind: SegIndex, Index: index})
	return p.String()
}

// AppendWildcardIndex returns base with "[*]" appended, e.g. used by
// LikeArray to build the per-element path.
func AppendWildcardIndex(base string) string {
	p := MustParsePath(base)
	p.Segments = append(p.Segments, Segment{Kind: SegWildcardIndex})
	return p.String()
}

// AppendWildcardAnyField returns base with ".*" appended, e.g.
// "$.body[*]" -> "$.body[*].*".
func AppendWildcardAnyField(base string) string {
	p := MustParsePath(base)
	p.Segments = append(p.Segments, Segment{Kind: SegWildcardField})
	return p.String()
}

// specificity returns the per-segment score vector used to rank two
// selectors that both apply at the same structural point: exact name/index
// segments score 2, wildcards score 1 (spec.md §4.2). The root segment is
// not scored.
func (p Path) specificity() []int {
	scores := make([]int, 0, len(p.Segments))
	for _, seg := range p.Segments {
		switch seg.Kind {
		case SegField, SegIndex:
			scores = append(scores, 2)
		case SegWildcardField, SegWildcardIndex:
			scores = append(scores, 1)
		}
	}
	return scores
}

// moreSpecificThan compares two selectors known to both apply at the same
// point, per spec.md §4.2: score vectors are compared lexicographically,
// longest prefix (i.e. more segments) wins on a tie. It does not consider
// insertion order; callers break remaining ties themselves.
func moreSpecificThan(a, b Path) bool {
	as, bs := a.specificity(), b.specificity()
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			return as[i] > bs[i]
		}
	}
	return len(as) > len(bs)
}

// applies reports whether selector could apply at the concrete structural
// position described by target: every segment of selector must match the
// corresponding segment of target by kind (wildcards match anything of the
// right shape), and selector must not be longer than target.
func applies(selector, target Path) bool {
	if len(selector.Segments) > len(target.Segments) {
		return false
	}
	for i, sel := range selector.Segments {
		t := target.Segments[i]
		switch sel.Kind {
		case SegRoot:
			if t.Kind != SegRoot {
				return false
			}
		case SegField:
			if t.Kind != SegField || t.Name != sel.Name {
				return false
			}
		case SegIndex:
			if t.Kind != SegIndex || t.Index != sel.Index {
				return false
			}
		case SegWildcardField:
			if t.Kind != SegField {
				return false
			}
		case SegWildcardIndex:
			if t.Kind != SegIndex {
				return false
			}
		}
	}
	return true
}
