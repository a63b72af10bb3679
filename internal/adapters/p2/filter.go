package p2

import (
	"strings"
	"sync"

	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/zerr"
)

// Filter is a parsed LDAP filter as used in p2 metadata.
// Supported: & | ! = ~= >= <= with * wildcards and =* presence.
type Filter struct {
	op       byte // '&', '|', '!', or the comparison operator for leaves
	children []*Filter
	attr     string
	value    string
}

var filterCache sync.Map

// ParseFilter parses s. Parsed filters are cached by their source text.
func ParseFilter(s string) (*Filter, error) {
	if cached, ok := filterCache.Load(s); ok {
		return cached.(*Filter), nil //nolint:forcetypeassert // only *Filter is stored
	}

	p := &filterParser{src: s}
	f, err := p.parseFilter()
	if err == nil {
		p.skipSpace()
		if p.pos != len(p.src) {
			err = p.fail("trailing characters")
		}
	}
	if err != nil {
		return nil, err
	}

	filterCache.Store(s, f)
	return f, nil
}

// Match evaluates f against props. Missing attributes never match.
func (f *Filter) Match(props map[string]string) bool {
	switch f.op {
	case '&':
		for _, c := range f.children {
			if !c.Match(props) {
				return false
			}
		}
		return true
	case '|':
		for _, c := range f.children {
			if c.Match(props) {
				return true
			}
		}
		return false
	case '!':
		return !f.children[0].Match(props)
	}

	actual, ok := props[f.attr]
	if !ok {
		return false
	}

	switch f.op {
	case '~':
		return strings.EqualFold(strings.Join(strings.Fields(actual), ""), strings.Join(strings.Fields(f.value), ""))
	case '>':
		return compareValues(actual, f.value) >= 0
	case '<':
		return compareValues(actual, f.value) <= 0
	default:
		if f.value == "*" {
			return true
		}
		if strings.Contains(f.value, "*") {
			return wildcardMatch(f.value, actual)
		}
		return compareValues(actual, f.value) == 0
	}
}

// compareValues compares as OSGi versions when both sides parse, else as strings.
func compareValues(a, b string) int {
	va, errA := domain.ParseVersion(a)
	vb, errB := domain.ParseVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	return strings.Compare(a, b)
}

func wildcardMatch(pattern, s string) bool {
	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	last := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(s, part)
		if idx < 0 {
			return false
		}
		s = s[idx+len(part):]
	}
	return strings.HasSuffix(s, last)
}

type filterParser struct {
	src string
	pos int
}

func (p *filterParser) fail(reason string) error {
	return zerr.With(zerr.With(domain.ErrInvalidFilter, "filter", p.src), "reason", reason)
}

func (p *filterParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *filterParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return p.fail("expected '" + string(c) + "'")
	}
	p.pos++
	return nil
}

func (p *filterParser) parseFilter() (*Filter, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.fail("unexpected end")
	}

	var f *Filter
	var err error
	switch c := p.src[p.pos]; c {
	case '&', '|':
		p.pos++
		f = &Filter{op: c}
		for {
			p.skipSpace()
			if p.pos < len(p.src) && p.src[p.pos] == ')' {
				break
			}
			child, childErr := p.parseFilter()
			if childErr != nil {
				return nil, childErr
			}
			f.children = append(f.children, child)
		}
		if len(f.children) == 0 {
			return nil, p.fail("empty filter list")
		}
	case '!':
		p.pos++
		var child *Filter
		child, err = p.parseFilter()
		f = &Filter{op: '!', children: []*Filter{child}}
	default:
		f, err = p.parseItem()
	}
	if err != nil {
		return nil, err
	}

	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return f, nil
}

func (p *filterParser) parseItem() (*Filter, error) {
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("=<>~()", rune(p.src[p.pos])) {
		p.pos++
	}
	attr := strings.TrimSpace(p.src[start:p.pos])
	if attr == "" || p.pos >= len(p.src) {
		return nil, p.fail("missing attribute")
	}

	var op byte
	switch p.src[p.pos] {
	case '=':
		op = '='
		p.pos++
	case '~', '>', '<':
		op = p.src[p.pos]
		if p.pos+1 >= len(p.src) || p.src[p.pos+1] != '=' {
			return nil, p.fail("invalid operator")
		}
		p.pos += 2
	default:
		return nil, p.fail("invalid operator")
	}

	var value strings.Builder
	for p.pos < len(p.src) && p.src[p.pos] != ')' {
		c := p.src[p.pos]
		if c == '(' {
			return nil, p.fail("unescaped '('")
		}
		if c == '\\' && p.pos+1 < len(p.src) {
			p.pos++
			c = p.src[p.pos]
		}
		value.WriteByte(c)
		p.pos++
	}

	return &Filter{op: op, attr: attr, value: strings.TrimSpace(value.String())}, nil
}
