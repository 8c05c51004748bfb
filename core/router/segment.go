package router

import (
	"fmt"
	"regexp"
	"strings"
)

type segmentKind uint8

const (
	segLiteral segmentKind = iota // hello
	segRegexp                     // {id:[0-9]+}
	segAny                        // {name}
	segAnyPath                    // *
)

// Segment is a single matchable element of a route pattern.
// Build segments with Lit, Regex, Any and AnyPath.
type Segment struct {
	kind  segmentKind
	value string
	name  string
	rex   *regexp.Regexp
}

// Lit matches one path segment equal to s.
func Lit(s string) Segment {
	if s == "" || strings.Contains(s, "/") {
		panic(fmt.Errorf("%w: literal %q", ErrInvalidSegment, s))
	}
	return Segment{kind: segLiteral, value: s}
}

// Regex matches one path segment against pattern. The pattern is anchored
// to the whole segment and compiled once, here.
func Regex(pattern string) Segment {
	if pattern == "" {
		panic(fmt.Errorf("%w: empty pattern", ErrInvalidRegexp))
	}
	// group first so alternations stay anchored on both ends
	rex, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		panic(fmt.Errorf("%w: '%s': %v", ErrInvalidRegexp, pattern, err))
	}
	return Segment{kind: segRegexp, value: pattern, rex: rex}
}

// Any matches exactly one path segment, whatever it holds.
func Any() Segment {
	return Segment{kind: segAny}
}

// AnyPath matches the rest of the path (one or more segments) and must be
// the last segment of a route. Each remaining segment becomes its own capture.
func AnyPath() Segment {
	return Segment{kind: segAnyPath}
}

// Named returns a copy of the segment whose capture is also reachable by key
// through Context.Param. Literal segments capture nothing and cannot be named.
func (s Segment) Named(name string) Segment {
	if s.kind == segLiteral {
		panic(fmt.Errorf("%w: literal %q cannot be named", ErrInvalidSegment, s.value))
	}
	s.name = name
	return s
}

// String renders the segment in the pattern syntax accepted by ParsePattern.
func (s Segment) String() string {
	switch s.kind {
	case segLiteral:
		return s.value
	case segRegexp:
		return "{" + s.name + ":" + s.value + "}"
	case segAny:
		return "{" + s.name + "}"
	default:
		if s.name != "" {
			return "*" + s.name
		}
		return "*"
	}
}

func (s Segment) captures() bool {
	return s.kind != segLiteral
}

// same reports whether two segments describe the same tree edge.
func (s Segment) same(o Segment) bool {
	return s.kind == o.kind && s.value == o.value
}

// ParsePattern converts a pattern string into segments.
//
//	/users/list        literal segments
//	/n/{:[0-9]+}       unnamed regex
//	/n/{id:[0-9]+}     named regex
//	/u/{name}  /u/{}   any single segment, named or not
//	/files/*  /f/*rest any remaining path, named or not
//
// Empty segments are ignored, so "/a//b/" and "a/b" both yield [a b].
func ParsePattern(pattern string) ([]Segment, error) {
	parts, err := splitPattern(pattern)
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(parts))
	for i, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("%w: '%s'", err, pattern)
		}
		if seg.kind == segAnyPath && i != len(parts)-1 {
			return nil, fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(pattern string) []Segment {
	segments, err := ParsePattern(pattern)
	if err != nil {
		panic(err)
	}
	return segments
}

// splitPattern splits on '/' outside of braces so regexes may contain slashes.
func splitPattern(pattern string) ([]string, error) {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: '%s'", ErrParamDelimiter, pattern)
			}
		case '/':
			if depth == 0 {
				if i > start {
					parts = append(parts, pattern[start:i])
				}
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: '%s'", ErrParamDelimiter, pattern)
	}
	if start < len(pattern) {
		parts = append(parts, pattern[start:])
	}
	return parts, nil
}

func parseSegment(part string) (seg Segment, err error) {
	// Regex and Named panic on bad input; report it as an error here.
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = e
				return
			}
			panic(p)
		}
	}()

	switch {
	case part[0] == '*':
		seg = AnyPath()
		if name := part[1:]; name != "" {
			seg = seg.Named(name)
		}
		return seg, nil

	case part[0] == '{':
		if part[len(part)-1] != '}' {
			return Segment{}, ErrParamDelimiter
		}
		inner := part[1 : len(part)-1]
		name, rexpat, isRegexp := strings.Cut(inner, ":")
		if isRegexp {
			seg = Regex(rexpat)
		} else {
			seg = Any()
		}
		if name != "" {
			seg = seg.Named(name)
		}
		return seg, nil

	case strings.ContainsAny(part, "{}*"):
		return Segment{}, ErrInvalidSegment

	default:
		return Lit(part), nil
	}
}

// patternString renders segments as an absolute pattern.
func patternString(segments []Segment) string {
	if len(segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(seg.String())
	}
	return b.String()
}
