package values

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tree is a decoded values file: nested mappings of string keys to scalars,
// sequences or further mappings.
type Tree map[string]any

// Load reads and decodes a values file.
// A missing file is reported as an error wrapping os.ErrNotExist; malformed
// YAML is fatal, callers never get a partially decoded tree.
func Load(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}

	return Parse(data)
}

// Parse decodes values YAML from memory.
func Parse(data []byte) (Tree, error) {
	tree := Tree{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse values file: %w", err)
	}
	// An empty document leaves the map nil
	if tree == nil {
		tree = Tree{}
	}

	return tree, nil
}
