package trivy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
)

// CountSeverities returns the critical and high findings in vulns.
// Severities are compared case-insensitively.
func CountSeverities(vulns []Vulnerability) (critical, high int) {
	for _, v := range vulns {
		switch strings.ToUpper(v.Severity) {
		case SeverityCritical:
			critical++
		case SeverityHigh:
			high++
		}
	}
	return critical, high
}

// LoadFile reads one Trivy JSON result. The image name is the artifact name,
// or the file name without extension when the result has none.
func LoadFile(path string) (ImageCount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageCount{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return ImageCount{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	count := ImageCount{Name: report.ArtifactName}
	if count.Name == "" {
		count.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	for _, res := range report.Results {
		c, h := CountSeverities(res.Vulnerabilities)
		count.Critical += c
		count.High += h
	}
	return count, nil
}

// LoadDir reads every *.json result in dir, in file name order. Files that
// cannot be read or decoded are skipped. When two files name the same image
// the later one wins. The result is sorted by image name.
func LoadDir(dir string, log logrus.FieldLogger) ([]ImageCount, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(paths)

	byImage := make(map[string]ImageCount)
	for _, path := range paths {
		count, err := LoadFile(path)
		if err != nil {
			log.Debugf("skipping scan result: %v", err)
			continue
		}
		byImage[count.Name] = count
	}

	counts := lo.Values(byImage)
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Name < counts[j].Name
	})
	return counts, nil
}
