package images

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Chart holds the Chart.yaml fields image extraction needs.
// Fields are decoded as raw scalar text so that appVersion: 1.10 stays "1.10".
type Chart struct {
	Name       string `yaml:"name"`
	Version    string `yaml:"version"`
	AppVersion string `yaml:"appVersion"`
}

// ImageBlock is one entry under .Values.image
type ImageBlock struct {
	Repository string `yaml:"repository"`
	Tag        string `yaml:"tag"`
	PullPolicy string `yaml:"pullPolicy"`
}

// ImageValues is the image section of values.yaml. Entries stay undecoded
// until asked for, so siblings such as pullSecrets or registry never fail the
// load.
type ImageValues struct {
	Image map[string]yaml.Node `yaml:"image"`
}

// Block decodes the image block stored under key. It returns nil when the key
// is absent or null, and an error when the entry is not a mapping.
func (v *ImageValues) Block(key string) (*ImageBlock, error) {
	node, ok := v.Image[key]
	if !ok || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("image.%s is not a mapping (line %d)", key, node.Line)
	}

	var block ImageBlock
	if err := node.Decode(&block); err != nil {
		return nil, fmt.Errorf("failed to decode image.%s: %w", key, err)
	}
	return &block, nil
}

// LoadChart decodes a Chart.yaml file
func LoadChart(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart file: %w", err)
	}

	var chart Chart
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("failed to parse chart file: %w", err)
	}
	return &chart, nil
}

// LoadImageValues decodes the image section of a values file
func LoadImageValues(path string) (*ImageValues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}

	return ParseImageValues(data)
}

// ParseImageValues decodes the image section from values.yaml content
func ParseImageValues(data []byte) (*ImageValues, error) {
	var values ImageValues
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse image values: %w", err)
	}
	return &values, nil
}
