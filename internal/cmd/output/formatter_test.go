package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eramap/internal/cmd/table"
	"github.com/agentstation/eramap/pkg/eras"
)

var records = []eras.Record{
	{Regime: "西晉", Era: "泰始", StartAD: 265, EndAD: 274},
	{Regime: "北魏", Era: "神䴥", StartAD: 428, EndAD: 431},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"table", FormatTable, false},
		{"", "", false},
		{"wide", "", true},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("Yaml"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, records))
	assert.Contains(t, buf.String(), `"era": "神䴥"`)
	assert.Contains(t, buf.String(), `"start_ad": 265`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, records))
	assert.Contains(t, buf.String(), "- regime: 西晉\n  era: 泰始\n")
}

func TestTableFormatter(t *testing.T) {
	t.Run("table data", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, table.RecordsToTableData(records)))
		out := buf.String()
		assert.Contains(t, strings.ToUpper(out), "REGIME")
		assert.Contains(t, out, "泰始")
		assert.Contains(t, out, "431")
	})

	t.Run("reflection", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, records))
		assert.Contains(t, strings.ToUpper(buf.String()), "START AD")
	})

	t.Run("falls back to json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"n": 1}))
		assert.Contains(t, buf.String(), `"n": 1`)
	})
}
