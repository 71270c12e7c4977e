package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jenian/chartgrd/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultOptions = Options{
	Keys:           []string{"api", "web", "sandbox", "proxy", "ssrfProxy", "pluginDaemon"},
	AppVersionKeys: []string{"api", "web", "pluginDaemon"},
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtract(t *testing.T) {
	tmpDir := t.TempDir()
	valuesPath := writeFile(t, tmpDir, "values.yaml", `
image:
  api:
    repository: langgenius/dify-api
    tag: ""
  web:
    repository: langgenius/dify-web
  sandbox:
    repository: langgenius/dify-sandbox
    tag: "0.2.12"
  proxy:
    repository: nginx
    tag: latest
  ssrfProxy:
    repository: ubuntu/squid
    tag: " \"6.6-24.04_beta\" "
  pluginDaemon:
    repository: langgenius/dify-plugin-daemon
    tag: 0.4.1-local
  unknown:
    repository: ignored/image
    tag: "1"
api:
  replicas: 1
`)
	chartPath := writeFile(t, tmpDir, "Chart.yaml", `
apiVersion: v2
name: dify
version: 0.30.0
appVersion: "1.10.1"
`)

	values, err := LoadImageValues(valuesPath)
	require.NoError(t, err)
	chart, err := LoadChart(chartPath)
	require.NoError(t, err)

	got := Extract(values, chart, defaultOptions, log.Discard())
	assert.Equal(t, []string{
		"langgenius/dify-api:1.10.1",
		"langgenius/dify-plugin-daemon:0.4.1-local",
		"langgenius/dify-sandbox:0.2.12",
		"langgenius/dify-web:1.10.1",
		"nginx:latest",
		"ubuntu/squid:6.6-24.04_beta",
	}, got)
}

func parseValues(t *testing.T, content string) *ImageValues {
	t.Helper()
	values, err := ParseImageValues([]byte(content))
	require.NoError(t, err)
	return values
}

func TestExtract_Fallbacks(t *testing.T) {
	values := parseValues(t, `
image:
  api:
    repository: langgenius/dify-api
  sandbox:
    repository: langgenius/dify-sandbox
  proxy:
    tag: "1.0"
  web:
`)

	t.Run("no app version", func(t *testing.T) {
		got := Extract(values, &Chart{}, defaultOptions, log.Discard())
		assert.Equal(t, []string{"langgenius/dify-api:latest", "langgenius/dify-sandbox:latest"}, got)
	})

	t.Run("app version only for app version keys", func(t *testing.T) {
		got := Extract(values, &Chart{AppVersion: ` "2.0.0" `}, defaultOptions, log.Discard())
		assert.Equal(t, []string{"langgenius/dify-api:2.0.0", "langgenius/dify-sandbox:latest"}, got)
	})
}

func TestExtract_Deduplicates(t *testing.T) {
	values := parseValues(t, `
image:
  api: {repository: langgenius/dify-api, tag: "1.0"}
  web: {repository: langgenius/dify-api, tag: "1.0"}
`)

	got := Extract(values, nil, defaultOptions, log.Discard())
	assert.Equal(t, []string{"langgenius/dify-api:1.0"}, got)
}

func TestExtract_IgnoresNonBlockSiblings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "values.yaml", `
image:
  api:
    repository: langgenius/dify-api
    tag: "1.0"
  pullSecrets:
    - regcred
  registry: docker.io
`)

	values, err := LoadImageValues(path)
	require.NoError(t, err)

	opts := Options{Keys: []string{"api", "registry", "pullSecrets"}}
	got := Extract(values, nil, opts, log.Discard())
	assert.Equal(t, []string{"langgenius/dify-api:1.0"}, got)

	_, err = values.Block("registry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image.registry is not a mapping")
}

func TestExtract_NoImageSection(t *testing.T) {
	got := Extract(&ImageValues{}, &Chart{AppVersion: "1.0"}, defaultOptions, log.Discard())
	assert.Empty(t, got)
}

func TestLoadChart_NumericAppVersion(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Chart.yaml", "name: dify\nappVersion: 1.10\n")

	chart, err := LoadChart(path)
	require.NoError(t, err)
	assert.Equal(t, "1.10", chart.AppVersion)
}

func TestLoadChart_Missing(t *testing.T) {
	_, err := LoadChart(filepath.Join(t.TempDir(), "Chart.yaml"))
	require.Error(t, err)
}
