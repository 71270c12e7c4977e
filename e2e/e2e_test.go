package e2e

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bradleyjkemp/cupaloy/v2"
	"github.com/jenian/chartgrd/internal/cli"
)

var scanDate = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func testdataPath(t *testing.T, name string) string {
	path := filepath.Join("testdata", name)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Testdata not found: %s", path)
	}

	// chartgrd never writes into the chart, so testdata is used directly
	absPath, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("Failed to get absolute path: %v", err)
	}
	return absPath
}

// run executes chartgrd in-process and returns stdout and the exit code
func run(t *testing.T, args ...string) (string, int) {
	cmd := cli.NewRootCommand("e2e", cli.WithClock(func() time.Time { return scanDate }))

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	// Keep any config file next to the tests out of the run
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.config")))

	err := cmd.Execute()
	if err == nil {
		return stdout.String(), 0
	}

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("chartgrd %v failed: %v\nStderr: %s", args, err, stderr.String())
	}
	return stdout.String(), exitErr.Code
}

func TestE2E_UnusedValues(t *testing.T) {
	output, code := run(t, "unused", testdataPath(t, "mock-chart"), "--no-header")

	// Exit code 1 is expected when unused values are found
	if code != 1 {
		t.Fatalf("Unexpected exit code: %d\nOutput: %s", code, output)
	}
	cupaloy.SnapshotT(t, output)
}

func TestE2E_NoUnusedValues(t *testing.T) {
	// Skipped sections and whole-object references leave nothing to report
	output, code := run(t, "unused", testdataPath(t, "mock-chart-clean"), "--no-header")

	if code != 0 {
		t.Fatalf("Unexpected exit code: %d\nOutput: %s", code, output)
	}
	cupaloy.SnapshotT(t, output)
}

func TestE2E_Images(t *testing.T) {
	output, code := run(t, "images", testdataPath(t, "mock-chart"))

	if code != 0 {
		t.Fatalf("Unexpected exit code: %d\nOutput: %s", code, output)
	}
	cupaloy.SnapshotT(t, output)
}

func TestE2E_CVEReport(t *testing.T) {
	// truncated.json is not valid JSON and must be skipped
	output, code := run(t, "cve-report", testdataPath(t, "trivy-results"), "--version", "1.10.1")

	if code != 0 {
		t.Fatalf("Unexpected exit code: %d\nOutput: %s", code, output)
	}
	cupaloy.SnapshotT(t, output)
}
