package analyzer

import "github.com/jenian/chartgrd/internal/values"

// Result contains the complete unused-values analysis
type Result struct {
	Values       values.FlatValues // Declared values after skipping sections
	References   int               // Number of distinct paths referenced by templates
	Unused       []string          // Declared keys no template references, sorted
	SkipSections []string          // Top-level sections left out of the check
}

// Declared returns the number of flat keys that were checked
func (r Result) Declared() int {
	return len(r.Values)
}
