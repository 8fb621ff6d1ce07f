// Package capability defines the capability token type shared by agents
// and tasks. Capabilities form an open vocabulary: any non-empty string is
// a valid capability, and no closed enumeration is enforced. A recommended
// vocabulary ships for configuration and demo convenience.
package capability

import "sort"

// Capability identifies a named skill that a task may require and an
// agent may possess.
type Capability string

// String returns the capability name.
func (c Capability) String() string {
	return string(c)
}

// Set is an unordered collection of capabilities.
type Set map[Capability]struct{}

// NewSet builds a Set from the given capabilities.
func NewSet(caps ...Capability) Set {
	s := make(Set, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether the set includes the given capability.
func (s Set) Contains(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Overlap returns how many of the given capabilities are present in the set.
func (s Set) Overlap(caps []Capability) int {
	n := 0
	for _, c := range caps {
		if s.Contains(c) {
			n++
		}
	}
	return n
}

// Sorted returns the set's capabilities in lexical order.
// Used wherever deterministic iteration matters.
func (s Set) Sorted() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Recommended is the default capability vocabulary. It is advisory only;
// agents and tasks may use capabilities outside this list.
var Recommended = []Capability{
	"data_analysis",
	"machine_learning",
	"optimization",
	"visualization",
	"pattern_recognition",
	"decision_making",
	"resource_management",
	"communication",
	"coordination",
	"problem_solving",
	"creativity",
	"adaptation",
	"prediction",
	"classification",
	"regression",
}
