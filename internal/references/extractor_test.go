package references

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jenian/chartgrd/internal/log"
	"github.com/jenian/chartgrd/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "direct values access",
			content:  `image: "{{ .Values.image.api.repository }}:{{ .Values.image.api.tag | default .Chart.AppVersion }}"`,
			expected: []string{"image.api.repository", "image.api.tag"},
		},
		{
			name:     "whole object reference",
			content:  `{{- toYaml .Values.api.resources | nindent 12 }}`,
			expected: []string{"api.resources"},
		},
		{
			name:     "named include",
			content:  `name: {{ include "dify.fullname" . }}-api`,
			expected: []string{"fullname"},
		},
		{
			name:     "single quoted nested include",
			content:  `{{ include 'dify.api.labels' . | nindent 4 }}`,
			expected: []string{"api.labels"},
		},
		{
			name:     "include in another namespace is ignored",
			content:  `{{ include "common.names.fullname" . }}`,
			expected: []string{},
		},
		{
			name:     "index access keeps the prefix",
			content:  `{{ index .Values.global "imageRegistry" }}`,
			expected: []string{"global"},
		},
		{
			name:     "duplicates collapse",
			content:  "{{ .Values.api.enabled }}\n{{ if .Values.api.enabled }}",
			expected: []string{"api.enabled"},
		},
		{
			name:     "no references",
			content:  "kind: Service",
			expected: []string{},
		},
	}

	extractor := NewExtractor("dify", log.Discard())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractor.Extract(tt.content).Sorted())
		})
	}
}

func TestExtractor_CustomNamespace(t *testing.T) {
	extractor := NewExtractor("mychart", log.Discard())
	refs := extractor.Extract(`{{ include "mychart.serviceAccountName" . }} {{ include "dify.fullname" . }}`)
	assert.Equal(t, []string{"serviceAccountName"}, refs.Sorted())
}

func TestExtractor_ExtractAll_UnionStable(t *testing.T) {
	extractor := NewExtractor("", log.Discard())
	a := []Document{{Path: "a.yaml", Content: "{{ .Values.api.image }} {{ .Values.shared }}"}}
	b := []Document{{Path: "b.yaml", Content: `{{ .Values.web.image }} {{ include "dify.fullname" . }} {{ .Values.shared }}`}}

	want := extractor.ExtractAll(a)
	want.Union(extractor.ExtractAll(b))

	got := extractor.ExtractAll(append(a, b...))
	assert.Equal(t, want.Sorted(), got.Sorted())
	assert.Equal(t, []string{"api.image", "fullname", "shared", "web.image"}, got.Sorted())
}

func TestExtractor_ExtractFiles_SkipsUnreadable(t *testing.T) {
	tmpDir := t.TempDir()
	good := filepath.Join(tmpDir, "deployment.yaml")
	require.NoError(t, os.WriteFile(good, []byte("{{ .Values.api.replicas }}"), 0644))

	files := []scanner.FileInfo{
		{Path: filepath.Join(tmpDir, "missing.yaml"), Kind: scanner.KindYAML},
		{Path: good, Kind: scanner.KindYAML},
	}

	refs, errs := NewExtractor("dify", log.Discard()).ExtractFiles(files)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "missing.yaml")
	assert.Equal(t, []string{"api.replicas"}, refs.Sorted())
}
