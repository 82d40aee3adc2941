package extract

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eramap"
	"github.com/agentstation/eramap/internal/cmd/application"
	"github.com/agentstation/eramap/internal/matcher"
	"github.com/agentstation/eramap/internal/sources/wikipedia"
	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/errors"
)

func testApp(format string) *application.Mock {
	return &application.Mock{
		PipelineFunc: func(opts ...eramap.Option) (eramap.Pipeline, error) {
			src := wikipedia.NewFile(filepath.Join("testdata", "page.html"))
			return eramap.New(append([]eramap.Option{eramap.WithSource(src)}, opts...)...)
		},
		OutputFormatFunc: func() string { return format },
	}
}

func execute(t *testing.T, app application.Application, args ...string) string {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestExtractJSON(t *testing.T) {
	out := execute(t, testApp("json"))

	var records []eras.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 7)
	assert.Equal(t, eras.Record{Regime: "西晉", Era: "泰始", StartAD: 265, EndAD: 274}, records[0])
}

func TestExtractRegime(t *testing.T) {
	out := execute(t, testApp("json"), "--regime", "北魏")

	var records []eras.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Equal(t, []eras.Record{
		{Regime: "北魏", Era: "登國", StartAD: 386, EndAD: 396},
		{Regime: "北魏", Era: "神䴥", StartAD: 428, EndAD: 431},
	}, records)
}

func TestExtractTableStats(t *testing.T) {
	out := execute(t, testApp("table"), "--stats")

	upper := strings.ToUpper(out)
	assert.Contains(t, upper, "START AD")
	assert.Contains(t, upper, "ERAS")
	assert.Contains(t, out, "成漢")
}

func TestExtractEraPattern(t *testing.T) {
	out := execute(t, testApp("json"), "--era", "^建")

	var records []eras.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "建初", records[0].Era)
	assert.Equal(t, "建興", records[1].Era)
}

func TestExtractBadPattern(t *testing.T) {
	cmd := NewCommand(testApp("json"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--era", "(建"})
	err := cmd.Execute()
	assert.True(t, errors.IsValidationError(err))
}

func TestFilterCopies(t *testing.T) {
	x := &eramap.Extraction{
		Source: "file",
		Records: []eras.Record{
			{Regime: "西晉", Era: "泰始"},
			{Regime: "北魏", Era: "登國"},
		},
	}
	regime, err := matcher.New(matcher.Auto, "北魏")
	require.NoError(t, err)

	got := filter(x, regime, nil)
	assert.Equal(t, "file", got.Source)
	assert.Len(t, got.Records, 1)
	assert.Len(t, x.Records, 2)
}
