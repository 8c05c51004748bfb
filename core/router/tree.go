package router

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrymomot/relay/core/handler"
)

// node is one level of the routing tree. Children are tried in a fixed order:
// the literal child equal to the segment, then regex children in registration
// order, then the wildcard child.
type node[C handler.Context] struct {
	// segment this node was reached by; zero for the root
	segment Segment

	parent *node[C]

	literals map[string]*node[C]
	regexps  []*node[C]

	// Any or AnyPath child, at most one per node
	wildcard *node[C]

	// route registered at this node, if any
	route *Route[C]
}

// insert walks and extends the tree from n along segments and returns the
// node the last segment lands on.
func (n *node[C]) insert(segments []Segment) *node[C] {
	cur := n
	for i, seg := range segments {
		if cur.segment.kind == segAnyPath || (seg.kind == segAnyPath && i != len(segments)-1) {
			panic(fmt.Errorf("%w: '%s'", ErrWildcardPosition, patternString(append(cur.path(), segments...))))
		}
		cur = cur.child(seg)
	}
	return cur
}

func (n *node[C]) child(seg Segment) *node[C] {
	switch seg.kind {
	case segLiteral:
		if c, ok := n.literals[seg.value]; ok {
			return c
		}
		if n.literals == nil {
			n.literals = make(map[string]*node[C])
		}
		c := &node[C]{segment: seg, parent: n}
		n.literals[seg.value] = c
		return c

	case segRegexp:
		for _, c := range n.regexps {
			if c.segment.same(seg) {
				c.checkName(seg)
				return c
			}
		}
		c := &node[C]{segment: seg, parent: n}
		n.regexps = append(n.regexps, c)
		return c

	default:
		if n.wildcard == nil {
			n.wildcard = &node[C]{segment: seg, parent: n}
			return n.wildcard
		}
		if n.wildcard.segment.kind != seg.kind {
			panic(fmt.Errorf("%w: '%s' and '%s' under '%s'",
				ErrWildcardConflict, n.wildcard.segment, seg, patternString(n.path())))
		}
		n.wildcard.checkName(seg)
		return n.wildcard
	}
}

func (n *node[C]) checkName(seg Segment) {
	if n.segment.name != seg.name {
		panic(fmt.Errorf("%w: '%s' already registered as '%s' under '%s'",
			ErrParamConflict, seg, n.segment, patternString(n.parent.path())))
	}
}

// path returns the segments leading from the root to n.
func (n *node[C]) path() []Segment {
	var segments []Segment
	for cur := n; cur.parent != nil; cur = cur.parent {
		segments = append(segments, cur.segment)
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return segments
}

// serves reports whether a request may terminate at n.
func (n *node[C]) serves() bool {
	return n.route != nil && n.route.handler != nil
}

// find resolves the remaining path segments below n. Captures accumulate in
// traversal order; a branch that fails deeper is abandoned and the next
// candidate at the same level is tried.
func (n *node[C]) find(segments, captures []string) (*node[C], []string) {
	if len(segments) == 0 {
		if n.serves() {
			return n, captures
		}
		return nil, nil
	}

	search := segments[0]
	rest := segments[1:]

	if c, ok := n.literals[search]; ok {
		if fn, caps := c.find(rest, captures); fn != nil {
			return fn, caps
		}
	}

	for _, c := range n.regexps {
		if !c.segment.rex.MatchString(search) {
			continue
		}
		if fn, caps := c.find(rest, append(captures, search)); fn != nil {
			return fn, caps
		}
	}

	if c := n.wildcard; c != nil {
		if c.segment.kind == segAnyPath {
			if c.serves() {
				return c, append(captures, segments...)
			}
			return nil, nil
		}
		if fn, caps := c.find(rest, append(captures, search)); fn != nil {
			return fn, caps
		}
	}

	return nil, nil
}

// walk visits every node below and including n in resolution order.
func (n *node[C]) walk(fn func(*node[C])) {
	fn(n)

	keys := make([]string, 0, len(n.literals))
	for k := range n.literals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.literals[k].walk(fn)
	}
	for _, c := range n.regexps {
		c.walk(fn)
	}
	if n.wildcard != nil {
		n.wildcard.walk(fn)
	}
}

// splitPath breaks a request path into unescaped, non-empty segments.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		if u, err := url.PathUnescape(p); err == nil {
			p = u
		}
		segments = append(segments, p)
	}
	return segments
}
