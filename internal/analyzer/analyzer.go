package analyzer

import (
	"sort"
	"strings"

	"github.com/jenian/chartgrd/internal/references"
	"github.com/jenian/chartgrd/internal/values"
	"github.com/samber/lo"
)

// IsReferenced reports whether a flat values key counts as used by templates.
//
// Templates reach values at any granularity, so besides an exact match a key is
// used when:
//   - one of its ancestors is referenced ("image.api" covers "image.api.tag")
//   - a reference reaches below it ("api" covers a template using "api.foo")
//   - a reference is a dotted prefix of it
//
// The last rule overlaps the ancestor walk for well-formed input and is kept
// for references that do not line up with the flattened paths.
func IsReferenced(key string, refs references.Set) bool {
	if refs.Has(key) {
		return true
	}

	parts := strings.Split(key, values.Separator)
	for i := 1; i < len(parts); i++ {
		if refs.Has(strings.Join(parts[:i], values.Separator)) {
			return true
		}
	}

	for ref := range refs {
		if strings.HasPrefix(ref, key+values.Separator) {
			return true
		}
		if strings.HasPrefix(key, ref+values.Separator) {
			return true
		}
	}

	return false
}

// FindUnused returns the declared keys that no template references, sorted
func FindUnused(flat values.FlatValues, refs references.Set) []string {
	unused := lo.Filter(flat.Keys(), func(key string, _ int) bool {
		return !IsReferenced(key, refs)
	})
	sort.Strings(unused)
	return unused
}

// Analyze flattens declared values without the skipped sections and compares
// them with the references found in templates
func Analyze(tree values.Tree, refs references.Set, skipSections []string) Result {
	flat := values.Flatten(tree, values.NewSkipSet(skipSections))

	return Result{
		Values:       flat,
		References:   len(refs),
		Unused:       FindUnused(flat, refs),
		SkipSections: skipSections,
	}
}
