package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jenian/chartgrd/internal/analyzer"
	"github.com/jenian/chartgrd/internal/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_NoUnused(t *testing.T) {
	var buf bytes.Buffer
	result := analyzer.Result{
		Values:       values.FlatValues{"app.name": "x"},
		SkipSections: []string{"redis", "postgresql"},
	}

	require.NoError(t, Format(&buf, result, false, false))
	assert.Equal(t, "No unused values found. All defined values are referenced in templates (skipping sections: redis, postgresql).\n", buf.String())
	assert.False(t, HasIssues(result))
}

func TestFormat_Unused(t *testing.T) {
	var buf bytes.Buffer
	result := analyzer.Result{
		Values:       values.FlatValues{"foo.bar": "v", "foo.baz": 1, "app.name": "x"},
		Unused:       []string{"foo.bar", "foo.baz"},
		SkipSections: []string{"redis"},
	}

	require.NoError(t, Format(&buf, result, false, false))
	expected := `Unused values found in values.yaml (not referenced in templates, skipping sections: redis):
  - foo.bar
  - foo.baz

Total unused values: 2

These values are defined in values.yaml but not referenced in any template files.
Consider removing them to keep the chart clean and maintainable.
`
	assert.Equal(t, expected, buf.String())
	assert.True(t, HasIssues(result))
}

func TestFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	result := analyzer.Result{
		Values:       values.FlatValues{"foo.bar": "v", "app.name": "x"},
		References:   3,
		Unused:       []string{"foo.bar"},
		SkipSections: []string{"redis"},
	}

	require.NoError(t, Format(&buf, result, true, false))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, JSONOutput{
		Unused:       []string{"foo.bar"},
		SkipSections: []string{"redis"},
		Declared:     2,
		References:   3,
	}, out)
}

func TestFormat_JSONEmptyListsNotNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, analyzer.Result{}, true, false))
	assert.Contains(t, buf.String(), `"unused": []`)
	assert.Contains(t, buf.String(), `"skip_sections": []`)
}

func TestFormat_Silent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, analyzer.Result{Unused: []string{"a"}}, false, true))
	assert.Empty(t, buf.String())
}

func TestFormatImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatImages(&buf, []string{"langgenius/dify-api:1.0", "nginx:latest"}))
	assert.Equal(t, "langgenius/dify-api:1.0\nnginx:latest\n", buf.String())
}
