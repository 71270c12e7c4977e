package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/renameio"
	"github.com/jenian/chartgrd/internal/trivy"
	"github.com/samber/lo"
)

// ScanDateLayout is how the scan date appears in the report
const ScanDateLayout = "2006-01-02 15:04:05 UTC"

// ImageRow is one image in the CVE report
type ImageRow struct {
	Display  string
	Critical int
	High     int
}

// Report is the data behind the Markdown CVE report
type Report struct {
	Version     string
	ScanDate    time.Time
	VendorTitle string
	Vendor      []ImageRow
	ThirdParty  []ImageRow
}

// BuildReport groups per-image counts into first-party and third-party rows
func BuildReport(counts []trivy.ImageCount, vendorPrefix, vendorTitle, version string, scanDate time.Time) Report {
	vendor, thirdParty := trivy.Classify(counts, vendorPrefix)
	toRow := func(c trivy.ImageCount, _ int) ImageRow {
		return ImageRow{Display: trivy.Slug(c.Name, vendorPrefix), Critical: c.Critical, High: c.High}
	}

	return Report{
		Version:     version,
		ScanDate:    scanDate.UTC(),
		VendorTitle: vendorTitle,
		Vendor:      lo.Map(vendor, toRow),
		ThirdParty:  lo.Map(thirdParty, toRow),
	}
}

func totals(rows []ImageRow) (critical, high int) {
	critical = lo.SumBy(rows, func(r ImageRow) int { return r.Critical })
	high = lo.SumBy(rows, func(r ImageRow) int { return r.High })
	return critical, high
}

func writeSection(lines []string, title string, rows []ImageRow) []string {
	lines = append(lines, "### "+title, "")
	for _, r := range rows {
		lines = append(lines,
			"#### "+r.Display,
			fmt.Sprintf("- **CRITICAL vulnerabilities:** %d", r.Critical),
			fmt.Sprintf("- **HIGH vulnerabilities:** %d", r.High),
			"",
		)
	}
	if len(rows) > 0 {
		c, h := totals(rows)
		lines = append(lines,
			fmt.Sprintf("**%s Summary:**", title),
			fmt.Sprintf("- **CRITICAL:** %d", c),
			fmt.Sprintf("- **HIGH:** %d", h),
			"",
		)
	}
	return append(lines, "---", "")
}

// RenderMarkdown renders the report as Markdown
func RenderMarkdown(r Report) string {
	lines := []string{
		"# Container Security Scan Results",
		"",
		"**Version:** " + r.Version,
		"",
		"**Scan Date:** " + r.ScanDate.Format(ScanDateLayout),
		"",
		"## Scan Results Summary",
		"",
	}

	vendorTitle := r.VendorTitle + " Supported Images"
	lines = writeSection(lines, vendorTitle, r.Vendor)
	lines = writeSection(lines, "Third-Party Images", r.ThirdParty)

	vc, vh := totals(r.Vendor)
	tc, th := totals(r.ThirdParty)
	lines = append(lines,
		"## Total Summary",
		fmt.Sprintf("- **Total CRITICAL vulnerabilities:** %d (%s: %d, Third-Party: %d)", vc+tc, r.VendorTitle, vc, tc),
		fmt.Sprintf("- **Total HIGH vulnerabilities:** %d (%s: %d, Third-Party: %d)", vh+th, r.VendorTitle, vh, th),
		"",
	)

	return strings.Join(lines, "\n")
}

// RenderTerminal renders Markdown for display in a terminal
func RenderTerminal(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer.Render(markdown)
}

// WriteFileAtomic writes data to path so readers never see a partial report
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
