package values

import (
	"fmt"
	"sort"
)

// Separator joins path segments of a flat key.
const Separator = "."

// FlatValues maps dotted keys (e.g. "image.api.tag") to leaf values.
type FlatValues map[string]any

// SkipSet holds top-level sections that are never flattened.
type SkipSet map[string]struct{}

// NewSkipSet builds a SkipSet from section names.
func NewSkipSet(sections []string) SkipSet {
	skip := make(SkipSet, len(sections))
	for _, s := range sections {
		skip[s] = struct{}{}
	}
	return skip
}

// Has reports whether section is skipped.
func (s SkipSet) Has(section string) bool {
	_, ok := s[section]
	return ok
}

// Flatten returns every leaf of tree keyed by its dotted path, leaving out
// top-level sections in skip. Only mappings recurse: scalars, sequences and
// nulls are leaves, and an empty mapping contributes nothing.
func Flatten(tree Tree, skip SkipSet) FlatValues {
	flat := make(FlatValues)
	for key, value := range tree {
		if skip.Has(key) {
			continue
		}
		flattenInto(flat, key, value)
	}
	return flat
}

func flattenInto(flat FlatValues, path string, value any) {
	switch node := value.(type) {
	case Tree:
		for k, v := range node {
			flattenInto(flat, join(path, k), v)
		}
	case map[string]any:
		for k, v := range node {
			flattenInto(flat, join(path, k), v)
		}
	case map[any]any:
		// yaml.v3 falls back to this when a mapping has non-string keys
		for k, v := range node {
			flattenInto(flat, join(path, fmt.Sprint(k)), v)
		}
	default:
		flat[path] = value
	}
}

func join(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + Separator + segment
}

// Keys returns the flat keys in sorted order.
func (f FlatValues) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
