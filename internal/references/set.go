package references

import "sort"

// Set is an unordered collection of dotted paths referenced by templates.
// It may hold partial paths or groupings that are not leaves in values.
type Set map[string]struct{}

// NewSet builds a Set from paths; duplicates collapse.
func NewSet(paths ...string) Set {
	s := make(Set, len(paths))
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

func (s Set) Add(path string) {
	s[path] = struct{}{}
}

func (s Set) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Union adds every path of other to s.
func (s Set) Union(other Set) {
	for p := range other {
		s.Add(p)
	}
}

// Sorted returns the paths in lexical order.
func (s Set) Sorted() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
