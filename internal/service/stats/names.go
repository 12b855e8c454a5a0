package stats

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

type ExclusionSet map[string]struct{}

func Exclude(names ...string) ExclusionSet {
	set := make(ExclusionSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (s ExclusionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

var (
	GlobalAggregates = Exclude("World", "International")
	IndiaAggregates  = Exclude("State Unassigned", "India")
)

const (
	WorldEntity = "World"
	IndiaEntity = "India"
)

// NameMap renames entities between the data source convention and the
// boundary dataset convention. The mapping must be one-to-one.
type NameMap struct {
	toBoundary map[string]string
	toSource   map[string]string
}

func NewNameMap(pairs map[string]string) NameMap {
	m := NameMap{
		toBoundary: make(map[string]string, len(pairs)),
		toSource:   make(map[string]string, len(pairs)),
	}
	for source, boundary := range pairs {
		m.toBoundary[source] = boundary
		m.toSource[boundary] = source
	}
	return m
}

var (
	GlobalNames = NewNameMap(nil)
	IndiaNames  = NewNameMap(map[string]string{
		"Andaman and Nicobar Islands": "Andaman & Nicobar",
	})
)

func (m NameMap) Normalize(name string) string {
	if n, ok := m.toBoundary[name]; ok {
		return n
	}
	return name
}

func (m NameMap) Denormalize(name string) string {
	if n, ok := m.toSource[name]; ok {
		return n
	}
	return name
}

// Pairs returns the source -> boundary pairs sorted by source name.
func (m NameMap) Pairs() [][2]string {
	pairs := make([][2]string, 0, len(m.toBoundary))
	for s, b := range m.toBoundary {
		pairs = append(pairs, [2]string{s, b})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })
	return pairs
}

// Key is the lookup form of an entity name: lowercased, trimmed, single
// spaced and without diacritics.
func Key(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(name)))

	var b strings.Builder
	b.Grow(len(decomposed))
	space := false
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// Resolve finds the candidate whose Key equals the Key of name.
func Resolve(name string, candidates []string) (string, bool) {
	key := Key(name)
	for _, c := range candidates {
		if c == name {
			return c, true
		}
	}
	for _, c := range candidates {
		if Key(c) == key {
			return c, true
		}
	}
	return "", false
}
