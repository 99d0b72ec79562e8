package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"", "", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON)

	require.NoError(t, f.Format(&buf, []string{"a", "b"}))

	var got []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatYAML)

	type item struct {
		Name  string `json:"name" yaml:"name"`
		Model string `json:"model" yaml:"model"`
	}
	require.NoError(t, f.Format(&buf, []item{{Name: "a", Model: "m"}}))

	out := buf.String()
	assert.Contains(t, out, "name: a")
	assert.Contains(t, out, "model: m")
}

func TestTableFormatterWithData(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable)

	err := f.Format(&buf, Data{
		Headers: []string{"NAME", "MODEL"},
		Rows:    [][]string{{"openai-gpt4", "gpt-4"}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "openai-gpt4")
	assert.Contains(t, out, "gpt-4")
}

func TestTableFormatterStructSlice(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable)

	type summary struct {
		Name          string `json:"name"`
		ConnectorType string `json:"connector_type"`
	}
	err := f.Format(&buf, []summary{{Name: "a", ConnectorType: "openai-connector"}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "CONNECTOR")
	assert.Contains(t, out, "openai-connector")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable)

	require.NoError(t, f.Format(&buf, map[string]int{"n": 1}))
	assert.Contains(t, buf.String(), `"n": 1`)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("yaml"))
	assert.Equal(t, FormatJSON, DetectFormat("JSON"))
}
