package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory
const FileName = ".chartgrd.config"

// DefaultSkipSections are the values sections whose schema belongs to
// dependency charts or external operators, not to this chart
var DefaultSkipSections = []string{"redis", "postgresql", "externalSecret", "weaviate"}

// Config represents the chartgrd configuration file
type Config struct {
	Ignores   IgnoresConfig   `yaml:"ignores"`
	Templates TemplatesConfig `yaml:"templates"`
	Images    ImagesConfig    `yaml:"images"`
	Report    ReportConfig    `yaml:"report"`
}

// IgnoresConfig contains what the unused-values check leaves out
type IgnoresConfig struct {
	Sections []string `yaml:"sections"` // Top-level values sections never checked
	Folders  []string `yaml:"folders"`  // Template folders to skip when scanning
}

// TemplatesConfig controls reference extraction
type TemplatesConfig struct {
	Namespace  string   `yaml:"namespace"`  // Prefix of named templates, e.g. "dify"
	Extensions []string `yaml:"extensions"` // Template file extensions
}

// ImagesConfig controls image extraction from chart defaults
type ImagesConfig struct {
	Keys           []string `yaml:"keys"`           // Blocks under .Values.image to read
	AppVersionKeys []string `yaml:"appVersionKeys"` // Blocks defaulting their tag to Chart.AppVersion
}

// ReportConfig controls the CVE report
type ReportConfig struct {
	VendorPrefix string `yaml:"vendorPrefix"` // Image prefix of first-party images
	VendorTitle  string `yaml:"vendorTitle"`  // Heading for first-party images
	Version      string `yaml:"version"`      // Version printed in the report
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Ignores: IgnoresConfig{
			Sections: append([]string(nil), DefaultSkipSections...),
			Folders:  []string{},
		},
		Templates: TemplatesConfig{
			Namespace:  "dify",
			Extensions: []string{".yaml", ".tpl", ".txt"},
		},
		Images: ImagesConfig{
			Keys:           []string{"api", "web", "sandbox", "proxy", "ssrfProxy", "pluginDaemon"},
			AppVersionKeys: []string{"api", "web", "pluginDaemon"},
		},
		Report: ReportConfig{
			VendorPrefix: "langgenius/",
			VendorTitle:  "Langgenius",
			Version:      "1.0",
		},
	}
}

// LoadConfig loads the configuration file at path.
// A missing file yields the defaults; fields left out of the file keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SkipSections resolves the effective skip list: explicit flags win over the
// config file, which wins over the defaults
func (c *Config) SkipSections(flags []string) []string {
	if len(flags) > 0 {
		return flags
	}
	if c != nil && c.Ignores.Sections != nil {
		return c.Ignores.Sections
	}
	return DefaultSkipSections
}

// Template is the content written by init-config
const Template = `# .chartgrd.config
# Configuration file for chartgrd

ignores:
  # Values sections owned by dependency charts or operators.
  # They are never reported as unused. --skip-section overrides this list.
  sections:
    - redis
    - postgresql
    - externalSecret
    - weaviate

  # Template folders to ignore when scanning
  folders:
    # - tests

templates:
  # Named templates are included as "<namespace>.<name>"
  namespace: dify
  extensions: [.yaml, .tpl, .txt]

images:
  keys: [api, web, sandbox, proxy, ssrfProxy, pluginDaemon]
  # These images default their tag to Chart.AppVersion
  appVersionKeys: [api, web, pluginDaemon]

report:
  vendorPrefix: langgenius/
  vendorTitle: Langgenius
  version: "1.0"
`
