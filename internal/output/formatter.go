package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jenian/chartgrd/internal/analyzer"
)

// JSONOutput represents the JSON output format of the unused-values check
type JSONOutput struct {
	Unused       []string `json:"unused"`
	SkipSections []string `json:"skip_sections"`
	Declared     int      `json:"declared"`
	References   int      `json:"references"`
}

// Format writes the unused-values result in the requested format
func Format(w io.Writer, result analyzer.Result, jsonOutput bool, silent bool) error {
	if silent {
		// In silent mode, only return exit code (handled by caller)
		return nil
	}

	if jsonOutput {
		return formatJSON(w, result)
	}

	return formatHumanReadable(w, result)
}

func formatJSON(w io.Writer, result analyzer.Result) error {
	output := JSONOutput{
		Unused:       append([]string{}, result.Unused...),
		SkipSections: append([]string{}, result.SkipSections...),
		Declared:     result.Declared(),
		References:   result.References,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func formatHumanReadable(w io.Writer, result analyzer.Result) error {
	p := paletteFor(w)
	sections := strings.Join(result.SkipSections, ", ")

	if len(result.Unused) == 0 {
		_, err := fmt.Fprintf(w, "%s%sNo unused values found. All defined values are referenced in templates (skipping sections: %s).%s\n",
			p.c(colorGreen), p.c(colorBold), sections, p.c(colorReset))
		return err
	}

	fmt.Fprintf(w, "%s%sUnused values found in values.yaml (not referenced in templates, skipping sections: %s):%s\n",
		p.c(colorBold), p.c(colorYellow), sections, p.c(colorReset))
	for _, key := range result.Unused {
		fmt.Fprintf(w, "  - %s%s%s\n", p.c(colorYellow), key, p.c(colorReset))
	}
	fmt.Fprintf(w, "\n%sTotal unused values:%s %s%d%s\n", p.c(colorBold), p.c(colorReset), p.c(colorRed), len(result.Unused), p.c(colorReset))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "These values are defined in values.yaml but not referenced in any template files.")
	_, err := fmt.Fprintln(w, "Consider removing them to keep the chart clean and maintainable.")
	return err
}

// HasIssues returns true if any declared value is unused
func HasIssues(result analyzer.Result) bool {
	return len(result.Unused) > 0
}

// FormatImages writes one image reference per line
func FormatImages(w io.Writer, images []string) error {
	for _, img := range images {
		if _, err := fmt.Fprintln(w, img); err != nil {
			return err
		}
	}
	return nil
}
